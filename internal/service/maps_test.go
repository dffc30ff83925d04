package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorahq/akfeed/internal/domain"
)

func TestRegionMap(t *testing.T) {
	content := &mockContentStore{
		listRegionsFn: func(ctx context.Context) ([]domain.Region, error) {
			return []domain.Region{
				{
					ID: "r1", Name: "Interior", Slug: "interior",
					Coordinates: domain.Geometry{
						Type: domain.GeometryPolygon,
						Rings: [][]domain.Coordinate{{
							{Lon: -150, Lat: 64}, {Lon: -148, Lat: 64},
							{Lon: -148, Lat: 66}, {Lon: -150, Lat: 66},
						}},
					},
				},
				{
					ID: "r2", Name: "Statewide", Slug: "statewide",
					Coordinates: domain.Geometry{
						Type:  domain.GeometryPoint,
						Point: domain.Coordinate{Lon: -152, Lat: 64},
					},
				},
			}, nil
		},
	}
	svc := newTestService(t, content, nil, nil)

	m, err := svc.RegionMap(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Regions, 1)
	assert.Equal(t, "interior", m.Regions[0].Slug)
	assert.InDelta(t, -149, m.Regions[0].Position.Lon, 1e-9)
	assert.InDelta(t, 65, m.Regions[0].Position.Lat, 1e-9)
	assert.Equal(t, domain.StatewidePosition, m.Statewide)
}

func TestBusinessMarkers(t *testing.T) {
	content := &mockContentStore{
		getRegionBySlugFn: func(ctx context.Context, slug string) (domain.Region, error) {
			return domain.Region{ID: "r-interior", Slug: slug}, nil
		},
		listBusinessesByRegionFn: func(ctx context.Context, regionID string, limit int) ([]domain.LocalBusiness, error) {
			return []domain.LocalBusiness{
				{ID: "b1", Name: "Aurora Outfitters", City: "Fairbanks"},
				{ID: "b2", Name: "Ghost Town Supply", City: "Nowhereville"},
			}, nil
		},
	}
	svc := newTestService(t, content, nil, nil)

	markers, err := svc.BusinessMarkers(context.Background(), "interior")
	require.NoError(t, err)

	// The unknown city is dropped, not errored.
	require.Len(t, markers, 1)
	assert.Equal(t, "b1", markers[0].ID)
	assert.Equal(t, "business", markers[0].Kind)
	assert.InDelta(t, 64.8378, markers[0].Position.Lat, 0.011)
	assert.InDelta(t, -147.7164, markers[0].Position.Lon, 0.011)
}

func TestResourceMarkers(t *testing.T) {
	content := &mockContentStore{
		getRegionBySlugFn: func(ctx context.Context, slug string) (domain.Region, error) {
			return domain.Region{ID: "r-southeast", Slug: slug}, nil
		},
		listResourcesByRegionFn: func(ctx context.Context, regionID string, limit int) ([]domain.PublicResource, error) {
			return []domain.PublicResource{
				{ID: "p1", Name: "Juneau DMV", City: "Juneau"},
			}, nil
		},
	}
	svc := newTestService(t, content, nil, nil)

	markers, err := svc.ResourceMarkers(context.Background(), "southeast")
	require.NoError(t, err)

	require.Len(t, markers, 1)
	assert.Equal(t, "resource", markers[0].Kind)
}
