package model

import (
	"errors"
	"math"
	"slices"
)

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RooftopPolygon is one user-drawn rooftop outline.
// AreaM2 is the geodesic ground area computed by the drawing collaborator;
// the core never derives it from Vertices.
type RooftopPolygon struct {
	Vertices []LatLng `json:"vertices"`
	AreaM2   float64  `json:"area_m2"`
}

// NewRooftopPolygon copies vertices so the polygon does not alias caller memory.
func NewRooftopPolygon(vertices []LatLng, areaM2 float64) RooftopPolygon {
	return RooftopPolygon{Vertices: slices.Clone(vertices), AreaM2: areaM2}
}

// Clone returns a deep copy.
func (p RooftopPolygon) Clone() RooftopPolygon {
	return NewRooftopPolygon(p.Vertices, p.AreaM2)
}

// Validate checks the area only. Ring simplicity is the drawing collaborator's job.
func (p RooftopPolygon) Validate() error {
	if math.IsNaN(p.AreaM2) || math.IsInf(p.AreaM2, 0) || p.AreaM2 < 0 {
		return ErrInvalidArea
	}
	if len(p.Vertices) > 0 && len(p.Vertices) < 3 {
		return errors.New("polygon needs at least 3 vertices")
	}
	return nil
}

// Location is a geocoded place chosen by the user.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}
