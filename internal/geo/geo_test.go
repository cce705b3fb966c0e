package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

// A 0.0001° square at the equator is about 11.13 m on a side.
var equatorSquare = []model.LatLng{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 0.0001},
	{Lat: 0.0001, Lng: 0.0001},
	{Lat: 0.0001, Lng: 0},
}

func TestGeodesicAreaSmallSquare(t *testing.T) {
	side := EarthRadius * 0.0001 * 3.141592653589793 / 180
	assert.InDelta(t, side*side, GeodesicArea(equatorSquare), 0.01)
}

func TestGeodesicAreaIgnoresWindingAndClosure(t *testing.T) {
	a := GeodesicArea(equatorSquare)

	reversed := []model.LatLng{equatorSquare[3], equatorSquare[2], equatorSquare[1], equatorSquare[0]}
	assert.InDelta(t, a, GeodesicArea(reversed), 1e-9)

	closed := append(append([]model.LatLng(nil), equatorSquare...), equatorSquare[0])
	assert.InDelta(t, a, GeodesicArea(closed), 1e-9)
}

func TestGeodesicAreaDegenerate(t *testing.T) {
	assert.Zero(t, GeodesicArea(nil))
	assert.Zero(t, GeodesicArea(equatorSquare[:2]))
}

func TestParseRooftop(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"feature collection", `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},
			{"type":"Feature","properties":{"name":"roof"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[0.0001,0],[0.0001,0.0001],[0,0.0001],[0,0]]]}}]}`},
		{"feature", `{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[0.0001,0],[0.0001,0.0001],[0,0.0001],[0,0]]]}}`},
		{"geometry", `{"type":"Polygon","coordinates":[[[0,0],[0.0001,0],[0.0001,0.0001],[0,0.0001]]]}`},
	}
	want := GeodesicArea(equatorSquare)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseRooftop([]byte(tt.doc))
			require.NoError(t, err)
			assert.Len(t, p.Vertices, 4, "closing vertex is dropped")
			assert.Equal(t, model.LatLng{Lat: 0, Lng: 0.0001}, p.Vertices[1], "positions are lon,lat")
			assert.InDelta(t, want, p.AreaM2, 1e-6)
		})
	}
}

func TestParseRooftopErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `nope`},
		{"unsupported type", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`},
		{"no polygon", `{"type":"FeatureCollection","features":[]}`},
		{"short position", `{"type":"Polygon","coordinates":[[[0],[1,1],[1,0]]]}`},
		{"too few vertices", `{"type":"Polygon","coordinates":[[[0,0],[1,1],[0,0]]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRooftop([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
