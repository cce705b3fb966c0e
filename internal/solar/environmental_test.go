package solar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"rooftop-solar/internal/model"
)

func TestComputeEnvironmental(t *testing.T) {
	a := model.DefaultAssumptions()

	tests := []struct {
		name       string
		annualKWh  float64
		wantKg     float64
		wantTonnes float64
		wantTrees  int64
	}{
		{name: "reference 10 kW system", annualKWh: 13687.5, wantKg: 11223.75, wantTonnes: 11.22375, wantTrees: 561},
		{name: "zero output", annualKWh: 0},
		{name: "negative output clamps to zero", annualKWh: -10},
		{name: "NaN output clamps to zero", annualKWh: math.NaN()},
		// 25 kWh × 0.82 = 20.5 kg → 1.025 trees
		{name: "rounds down below half", annualKWh: 25, wantKg: 20.5, wantTonnes: 0.0205, wantTrees: 1},
		// 37.5 kWh × 0.82 = 30.75 kg → 1.5375 trees
		{name: "rounds up above half", annualKWh: 37.5, wantKg: 30.75, wantTonnes: 0.03075, wantTrees: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEnvironmental(tt.annualKWh, a)
			assert.InDelta(t, tt.wantKg, got.CO2AvoidedKg, 1e-6)
			assert.InDelta(t, tt.wantTonnes, got.CO2AvoidedTonnes, 1e-9)
			assert.Equal(t, tt.wantTrees, got.TreeEquivalent)
			assert.InDelta(t, got.CO2AvoidedKg/1000, got.CO2AvoidedTonnes, 1e-12)
		})
	}
}

func TestComputeEnvironmentalHalfRoundsUp(t *testing.T) {
	a := model.DefaultAssumptions()
	a.CO2KgPerKWh = 1
	a.KgCO2PerTree = 20

	got := ComputeEnvironmental(30, a) // 30 kg / 20 = 1.5 trees
	assert.Equal(t, int64(2), got.TreeEquivalent)
}

func TestComputeEnvironmentalSaturatesTrees(t *testing.T) {
	got := ComputeEnvironmental(1e305, model.DefaultAssumptions())
	assert.Equal(t, int64(math.MaxInt64), got.TreeEquivalent)
	assert.False(t, math.IsInf(got.CO2AvoidedKg, 0))
}
