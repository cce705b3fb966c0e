// Package geo turns drawn rooftop outlines into model polygons.
package geo

import (
	"math"

	"rooftop-solar/internal/model"
)

// EarthRadius is the WGS84 equatorial radius in metres.
const EarthRadius = 6378137.0

// GeodesicArea returns the area in m² of a lat/lng ring on a sphere of
// EarthRadius, using the spherical-excess approximation web maps use for
// drawn shapes. The ring may be open or closed and either winding.
// Fewer than 3 vertices gives 0.
func GeodesicArea(ring []model.LatLng) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	const d2r = math.Pi / 180
	area := 0.0
	for i := 0; i < n; i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%n]
		area += (p2.Lng - p1.Lng) * d2r * (2 + math.Sin(p1.Lat*d2r) + math.Sin(p2.Lat*d2r))
	}
	return math.Abs(area * EarthRadius * EarthRadius / 2)
}

// RooftopFromRing builds a polygon whose area is the geodesic area of ring.
func RooftopFromRing(ring []model.LatLng) model.RooftopPolygon {
	ring = openRing(ring)
	return model.NewRooftopPolygon(ring, GeodesicArea(ring))
}

// openRing drops a closing vertex that repeats the first.
func openRing(ring []model.LatLng) []model.LatLng {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
