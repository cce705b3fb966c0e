package solar

import (
	"fmt"
	"math"

	"rooftop-solar/internal/model"
)

// ComputeFinancials derives savings and payback from modeled energy.
//
// The savings potential is the whole output valued at the retail rate. When a
// yearly bill is supplied (> 0), each month's savings are capped at bill/12
// since the system cannot save more than the household spends. Without a bill
// the actual savings equal the potential.
//
// Payback is cost / actual savings, or 0 when there are no savings; in that
// case the error wraps model.ErrZeroSavings and the result is still complete.
func ComputeFinancials(energy model.EnergyResult, systemCost, electricityRate, yearlyBill float64) (model.FinancialResult, error) {
	res := model.FinancialResult{
		ElectricityRate: electricityRate,
		BillSupplied:    billSupplied(yearlyBill),
	}
	if res.BillSupplied {
		res.YearlyBill = yearlyBill
	}

	res.AnnualSavingsPotential = energy.AnnualOutputKWh * electricityRate
	for i, kwh := range energy.MonthlyOutputKWh {
		res.MonthlySavingsPotential[i] = kwh * electricityRate
	}

	if res.BillSupplied {
		monthlyCap := yearlyBill / model.Months
		actual := 0.0
		for i, s := range res.MonthlySavingsPotential {
			res.MonthlyActualSavings[i] = math.Min(s, monthlyCap)
			actual += res.MonthlyActualSavings[i]
		}
		// Summing months may drift an ulp above the annual product.
		res.ActualAnnualSavings = math.Min(actual, res.AnnualSavingsPotential)
		res.Comparison = model.BillComparison{
			WithoutSolar: yearlyBill,
			WithSolar:    yearlyBill - res.ActualAnnualSavings,
			Savings:      res.ActualAnnualSavings,
		}
	} else {
		res.MonthlyActualSavings = res.MonthlySavingsPotential
		res.ActualAnnualSavings = res.AnnualSavingsPotential
	}

	res.PaybackPeriodPotentialYears = payback(systemCost, res.AnnualSavingsPotential)
	res.PaybackPeriodYears = payback(systemCost, res.ActualAnnualSavings)
	if !(res.ActualAnnualSavings > 0) {
		return res, fmt.Errorf("%w: payback reported as 0", model.ErrZeroSavings)
	}
	return res, nil
}

func billSupplied(bill float64) bool {
	return bill > 0 && !math.IsInf(bill, 0)
}

// payback is 0 when there are no savings or the ratio is not finite.
func payback(cost, savings float64) float64 {
	if !(savings > 0) {
		return 0
	}
	years := cost / savings
	if !finite(years) {
		return 0
	}
	return years
}
