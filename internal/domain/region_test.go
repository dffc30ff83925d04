package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polygon(rings ...[]Coordinate) Geometry {
	return Geometry{Type: GeometryPolygon, Rings: rings}
}

func TestGeometryCentroid(t *testing.T) {
	t.Run("point is used directly", func(t *testing.T) {
		g := Geometry{Type: GeometryPoint, Point: Coordinate{Lon: -147.72, Lat: 64.84}}

		c, ok := g.Centroid()

		require.True(t, ok)
		assert.Equal(t, Coordinate{Lon: -147.72, Lat: 64.84}, c)
	})

	t.Run("polygon uses vertex mean", func(t *testing.T) {
		g := polygon([]Coordinate{
			{Lon: -150, Lat: 64}, {Lon: -148, Lat: 64},
			{Lon: -148, Lat: 66}, {Lon: -150, Lat: 66},
		})

		c, ok := g.Centroid()

		require.True(t, ok)
		assert.InDelta(t, -149.0, c.Lon, 1e-9)
		assert.InDelta(t, 65.0, c.Lat, 1e-9)
	})

	t.Run("empty geometry has no centroid", func(t *testing.T) {
		_, ok := Geometry{}.Centroid()
		assert.False(t, ok)

		_, ok = polygon().Centroid()
		assert.False(t, ok)
	})
}

func TestGeometryBoundingBox(t *testing.T) {
	t.Run("polygon bounds", func(t *testing.T) {
		g := polygon([]Coordinate{
			{Lon: -150, Lat: 64}, {Lon: -148, Lat: 64},
			{Lon: -148, Lat: 66}, {Lon: -150, Lat: 66},
		})

		box, ok := g.BoundingBox()

		require.True(t, ok)
		assert.Equal(t, BoundingBox{MinLon: -150, MinLat: 64, MaxLon: -148, MaxLat: 66}, box)
	})

	t.Run("point gets a fixed one degree box", func(t *testing.T) {
		g := Geometry{Type: GeometryPoint, Point: Coordinate{Lon: -165.4, Lat: 64.5}}

		box, ok := g.BoundingBox()

		require.True(t, ok)
		assert.Equal(t, BoundingBox{MinLon: -166.4, MinLat: 63.5, MaxLon: -164.4, MaxLat: 65.5}, box)
	})
}

func TestGeometryJSONRoundTrip(t *testing.T) {
	t.Run("point", func(t *testing.T) {
		g := Geometry{Type: GeometryPoint, Point: Coordinate{Lon: -149.9, Lat: 61.22}}

		data, err := json.Marshal(g)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"Point","coordinates":[-149.9,61.22]}`, string(data))

		var back Geometry
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, g, back)
	})

	t.Run("polygon", func(t *testing.T) {
		g := polygon([]Coordinate{{Lon: -150, Lat: 64}, {Lon: -148, Lat: 64}, {Lon: -148, Lat: 66}})

		data, err := json.Marshal(g)
		require.NoError(t, err)

		var back Geometry
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, g, back)
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var g Geometry
		err := json.Unmarshal([]byte(`{"type":"MultiPolygon","coordinates":[]}`), &g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported type")
	})
}

func TestGeometryScan(t *testing.T) {
	var g Geometry
	require.NoError(t, g.Scan([]byte(`{"type":"Point","coordinates":[-147.7164,64.8378]}`)))
	assert.Equal(t, GeometryPoint, g.Type)
	assert.Equal(t, 64.8378, g.Point.Lat)

	require.Error(t, g.Scan(42))
}

func TestRegionSlugForDisplayName(t *testing.T) {
	tests := []struct {
		name string
		slug string
		ok   bool
	}{
		{"Southeast", "southeast", true},
		{"Southcentral", "southcentral", true},
		{"Interior", "interior", true},
		{"Southwest", "southwest", true},
		{"Northern", "northern", true},
		{"Western", "", false},
		{"Arctic", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := RegionSlugForDisplayName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.slug, slug)
		})
	}
}
