package data

import (
	"os"

	"rooftop-solar/internal/model"
)

// LoadClimatologyJSON reads a saved NASA POWER climatology response, for
// offline estimates.
func LoadClimatologyJSON(path string) (model.SeriesIrradiance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.SeriesIrradiance{}, err
	}
	return ParseClimatology(raw)
}
