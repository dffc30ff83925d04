package service

import (
	"context"
	"fmt"

	"github.com/aurorahq/akfeed/internal/domain"
)

// mapMarkerLimit caps how many entities one map layer plots.
const mapMarkerLimit = 200

// RegionMap is the payload behind the interactive state map: one marker
// per geographic region plus a single fixed statewide marker.
type RegionMap struct {
	Regions   []domain.RegionMarker `json:"regions"`
	Statewide domain.Coordinate     `json:"statewide"`
}

// RegionMap computes label positions and zoom boxes for the stored regions.
func (s *Service) RegionMap(ctx context.Context) (RegionMap, error) {
	regions, err := s.store.ListRegions(ctx)
	if err != nil {
		return RegionMap{}, fmt.Errorf("listing regions: %w", err)
	}
	return RegionMap{
		Regions:   domain.RegionMarkers(regions),
		Statewide: domain.StatewidePosition,
	}, nil
}

// BusinessMarkers plots a region's businesses by city centerpoint.
// Businesses in cities absent from the reference table are dropped.
func (s *Service) BusinessMarkers(ctx context.Context, regionSlug string) ([]domain.Marker, error) {
	region, err := s.store.GetRegionBySlug(ctx, regionSlug)
	if err != nil {
		return nil, err
	}
	businesses, err := s.store.ListBusinessesByRegion(ctx, region.ID, mapMarkerLimit)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	markers := make([]domain.Marker, 0, len(businesses))
	for _, b := range businesses {
		m, ok := domain.PlaceMarker(b.ID, b.Name, "business", b.City, s.data.Cities)
		if !ok {
			continue
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// ResourceMarkers plots a region's public resources by city centerpoint.
func (s *Service) ResourceMarkers(ctx context.Context, regionSlug string) ([]domain.Marker, error) {
	region, err := s.store.GetRegionBySlug(ctx, regionSlug)
	if err != nil {
		return nil, err
	}
	resources, err := s.store.ListResourcesByRegion(ctx, region.ID, mapMarkerLimit)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	markers := make([]domain.Marker, 0, len(resources))
	for _, r := range resources {
		m, ok := domain.PlaceMarker(r.ID, r.Name, "resource", r.City, s.data.Cities)
		if !ok {
			continue
		}
		markers = append(markers, m)
	}
	return markers, nil
}
