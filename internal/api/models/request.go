package models

import (
	"rooftop-solar/internal/config"
	"rooftop-solar/internal/model"
)

// EstimateRequest is the body of POST /api/v1/estimate.
type EstimateRequest struct {
	Polygon    PolygonInput    `json:"polygon" binding:"required"`
	YearlyBill float64         `json:"yearly_bill"`
	Location   *model.Location `json:"location,omitempty"`
	// Irradiance selects series mode with caller-supplied values ({"1": v, ...}).
	Irradiance *model.SeriesIrradiance `json:"irradiance,omitempty"`
	// UseLocationIrradiance looks up the location's climatology when no
	// irradiance is given. Lookup failures fall back to flat mode.
	UseLocationIrradiance bool                 `json:"use_location_irradiance,omitempty"`
	Assumptions           *AssumptionsOverride `json:"assumptions,omitempty"`
}

// PolygonInput is one drawn rooftop. The area comes from the map.
type PolygonInput struct {
	Vertices []model.LatLng `json:"vertices,omitempty"`
	AreaM2   *float64       `json:"area_m2" binding:"required"`
}

// ToModel converts to a model polygon.
func (p PolygonInput) ToModel() model.RooftopPolygon {
	area := 0.0
	if p.AreaM2 != nil {
		area = *p.AreaM2
	}
	return model.NewRooftopPolygon(p.Vertices, area)
}

// AssumptionsOverride replaces individual model constants for one request.
// Zero fields keep the server's values.
type AssumptionsOverride struct {
	M2PerKW          float64   `json:"m2_per_kw,omitempty"`
	CostPerKW        float64   `json:"cost_per_kw,omitempty"`
	ElectricityRate  float64   `json:"electricity_rate,omitempty"`
	FlatIrradiance   float64   `json:"flat_irradiance,omitempty"`
	PerformanceRatio float64   `json:"performance_ratio,omitempty"`
	PanelEfficiency  float64   `json:"panel_efficiency,omitempty"`
	LossFactor       float64   `json:"loss_factor,omitempty"`
	CO2KgPerKWh      float64   `json:"co2_kg_per_kwh,omitempty"`
	KgCO2PerTree     float64   `json:"kg_co2_per_tree,omitempty"`
	SeasonalWeights  []float64 `json:"seasonal_weights,omitempty"`
}

// ToConfig maps the override onto the config shape for config.MergeAssumptions.
func (o AssumptionsOverride) ToConfig() config.AssumptionsConfig {
	return config.AssumptionsConfig{
		M2PerKW:          o.M2PerKW,
		CostPerKW:        o.CostPerKW,
		ElectricityRate:  o.ElectricityRate,
		FlatIrradiance:   o.FlatIrradiance,
		PerformanceRatio: o.PerformanceRatio,
		PanelEfficiency:  o.PanelEfficiency,
		LossFactor:       o.LossFactor,
		CO2KgPerKWh:      o.CO2KgPerKWh,
		KgCO2PerTree:     o.KgCO2PerTree,
		SeasonalWeights:  o.SeasonalWeights,
	}
}

// SessionPolygonRequest is the body of PUT /api/v1/sessions/:id/polygon.
type SessionPolygonRequest struct {
	Polygon PolygonInput `json:"polygon" binding:"required"`
}

// SessionBillRequest is the body of PUT /api/v1/sessions/:id/bill.
type SessionBillRequest struct {
	YearlyBill *float64 `json:"yearly_bill" binding:"required"`
}

// SessionLocationRequest is the body of PUT /api/v1/sessions/:id/location.
type SessionLocationRequest struct {
	Location              model.Location          `json:"location"`
	Irradiance            *model.SeriesIrradiance `json:"irradiance,omitempty"`
	UseLocationIrradiance bool                    `json:"use_location_irradiance,omitempty"`
}

// IrradianceQuery binds GET /api/v1/irradiance.
type IrradianceQuery struct {
	Lat    *float64 `form:"lat" binding:"required"`
	Lon    *float64 `form:"lon" binding:"required"`
	AreaM2 float64  `form:"area_m2"`
}

// CompareRequest is the body of POST /api/v1/estimate/compare.
type CompareRequest struct {
	Base       EstimateRequest     `json:"base" binding:"required"`
	Variations []EstimateVariation `json:"variations" binding:"required,min=1,dive"`
}

// EstimateVariation overrides parts of the base request. The base location
// and irradiance are shared by every variation.
type EstimateVariation struct {
	Name        string               `json:"name" binding:"required"`
	Polygon     *PolygonInput        `json:"polygon,omitempty"`
	YearlyBill  *float64             `json:"yearly_bill,omitempty"`
	Assumptions *AssumptionsOverride `json:"assumptions,omitempty"`
}
