package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// IrradianceMode selects which energy formula applies.
type IrradianceMode string

const (
	// ModeFlat applies one scalar irradiance shaped by a seasonal curve.
	ModeFlat IrradianceMode = "flat"
	// ModeSeries applies a location-specific value per month.
	ModeSeries IrradianceMode = "series"
)

// Irradiance is either FlatIrradiance or SeriesIrradiance. Values are kWh/m²/day.
type Irradiance interface {
	Mode() IrradianceMode
	// At returns the irradiance for a month and whether it is usable.
	At(month time.Month) (float64, bool)
}

// FlatIrradiance is a single average daily irradiance used for every month.
type FlatIrradiance float64

func (FlatIrradiance) Mode() IrradianceMode { return ModeFlat }

func (f FlatIrradiance) At(time.Month) (float64, bool) {
	v := float64(f)
	return v, usable(v)
}

// SeriesIrradiance holds one value per calendar month. It is immutable once built;
// months that were never set, or were set to a non-finite or negative value, are missing.
type SeriesIrradiance struct {
	values  [12]float64
	present [12]bool
}

// NewSeriesIrradiance builds a series from a month-number (1-12) keyed map.
// Keys outside 1..12 are ignored.
func NewSeriesIrradiance(byMonth map[int]float64) SeriesIrradiance {
	var s SeriesIrradiance
	for m, v := range byMonth {
		if m < 1 || m > 12 {
			continue
		}
		s.values[m-1] = v
		s.present[m-1] = usable(v)
	}
	return s
}

func (SeriesIrradiance) Mode() IrradianceMode { return ModeSeries }

func (s SeriesIrradiance) At(month time.Month) (float64, bool) {
	if month < time.January || month > time.December {
		return 0, false
	}
	i := int(month) - 1
	if !s.present[i] {
		return 0, false
	}
	return s.values[i], true
}

// Complete reports whether all twelve months are usable.
func (s SeriesIrradiance) Complete() bool {
	for _, ok := range s.present {
		if !ok {
			return false
		}
	}
	return true
}

// Map returns the usable months keyed 1..12.
func (s SeriesIrradiance) Map() map[int]float64 {
	out := make(map[int]float64, 12)
	for i, ok := range s.present {
		if ok {
			out[i+1] = s.values[i]
		}
	}
	return out
}

// MarshalJSON encodes the usable months as {"1": v, ...}.
func (s SeriesIrradiance) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, 12)
	for m, v := range s.Map() {
		out[strconv.Itoa(m)] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts {"1": v, ...}. Non-numeric values become missing months.
func (s *SeriesIrradiance) UnmarshalJSON(raw []byte) error {
	var in map[string]json.RawMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	byMonth := make(map[int]float64, len(in))
	for k, v := range in {
		m, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			f = math.NaN()
		}
		byMonth[m] = f
	}
	*s = NewSeriesIrradiance(byMonth)
	return nil
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
