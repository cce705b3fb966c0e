package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"rooftop-solar/internal/model"
)

// FeatureCollection is the subset of GeoJSON needed to read a drawn roof.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry keeps coordinates raw; only Polygon is decoded.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ErrNoPolygon is returned when a document holds no Polygon geometry.
var ErrNoPolygon = errors.New("geojson: no polygon geometry")

// ParseRooftop reads the first Polygon's outer ring from a GeoJSON
// FeatureCollection, Feature or bare geometry and measures it.
// Positions are [lon, lat]; holes are ignored.
func ParseRooftop(raw []byte) (model.RooftopPolygon, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return model.RooftopPolygon{}, fmt.Errorf("geojson: %w", err)
	}

	var geoms []Geometry
	switch head.Type {
	case "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(raw, &fc); err != nil {
			return model.RooftopPolygon{}, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		var f Feature
		if err := json.Unmarshal(raw, &f); err != nil {
			return model.RooftopPolygon{}, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	case "Polygon":
		var g Geometry
		if err := json.Unmarshal(raw, &g); err != nil {
			return model.RooftopPolygon{}, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, g)
	default:
		return model.RooftopPolygon{}, fmt.Errorf("geojson: unsupported type %q", head.Type)
	}

	for _, g := range geoms {
		if g.Type != "Polygon" {
			continue
		}
		ring, err := outerRing(g.Coordinates)
		if err != nil {
			return model.RooftopPolygon{}, err
		}
		p := RooftopFromRing(ring)
		if err := p.Validate(); err != nil {
			return model.RooftopPolygon{}, fmt.Errorf("geojson: %w", err)
		}
		return p, nil
	}
	return model.RooftopPolygon{}, ErrNoPolygon
}

func outerRing(raw json.RawMessage) ([]model.LatLng, error) {
	var rings [][][]float64
	if err := json.Unmarshal(raw, &rings); err != nil {
		return nil, fmt.Errorf("geojson: polygon coordinates: %w", err)
	}
	if len(rings) == 0 {
		return nil, ErrNoPolygon
	}
	out := make([]model.LatLng, 0, len(rings[0]))
	for i, pos := range rings[0] {
		if len(pos) < 2 {
			return nil, fmt.Errorf("geojson: position %d has %d values", i, len(pos))
		}
		out = append(out, model.LatLng{Lat: pos[1], Lng: pos[0]})
	}
	return out, nil
}
