package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/store"
)

// ErrUnknownCommunity is returned when a slug matches no community record.
var ErrUnknownCommunity = errors.New("unknown community")

// CommunityPage is the full payload for a community detail page. Region
// is nil when the community's region display name has no stored region
// (see the domain package doc on Western).
type CommunityPage struct {
	Community  domain.Community       `json:"community"`
	Region     *domain.Region         `json:"region,omitempty"`
	News       []domain.NewsItem      `json:"news"`
	Businesses []domain.LocalBusiness `json:"businesses"`
}

// ResolveCommunity looks up a community by slug and assembles its page:
// the static record, its region row if one exists, and that region's
// recent news and businesses. Store failures degrade to empty lists so
// the static community content still renders.
func (s *Service) ResolveCommunity(ctx context.Context, slug string) (CommunityPage, error) {
	community, ok := s.data.CommunityBySlug(slug)
	if !ok {
		s.metrics.CommunityLookups.WithLabelValues("not_found").Inc()
		return CommunityPage{}, ErrUnknownCommunity
	}
	s.metrics.CommunityLookups.WithLabelValues("found").Inc()

	page := CommunityPage{
		Community:  community,
		News:       []domain.NewsItem{},
		Businesses: []domain.LocalBusiness{},
	}

	regionSlug, ok := domain.RegionSlugForDisplayName(community.Region)
	if !ok {
		return page, nil
	}
	region, err := s.store.GetRegionBySlug(ctx, regionSlug)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("community region lookup failed", "slug", slug, "region", regionSlug, "error", err)
		}
		return page, nil
	}
	page.Region = &region

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		news, err := s.store.ListNewsByRegion(ctx, region.ID, store.RegionNewsLimit)
		if err != nil {
			s.logger.Error("community news fetch failed", "slug", slug, "error", err)
			return
		}
		page.News = news
	}()
	go func() {
		defer wg.Done()
		businesses, err := s.store.ListBusinessesByRegion(ctx, region.ID, store.RegionBusinessLimit)
		if err != nil {
			s.logger.Error("community businesses fetch failed", "slug", slug, "error", err)
			return
		}
		page.Businesses = businesses
	}()
	wg.Wait()

	return page, nil
}

// WeatherReport pairs current conditions with the fixed-length forecast.
type WeatherReport struct {
	Location string                 `json:"location"`
	Current  domain.WeatherSnapshot `json:"current"`
	Forecast []domain.ForecastDay   `json:"forecast"`
}

// CommunityWeather generates a synthetic weather report for a community.
func (s *Service) CommunityWeather(slug string) (WeatherReport, error) {
	community, ok := s.data.CommunityBySlug(slug)
	if !ok {
		s.metrics.CommunityLookups.WithLabelValues("not_found").Inc()
		return WeatherReport{}, ErrUnknownCommunity
	}
	s.metrics.CommunityLookups.WithLabelValues("found").Inc()
	return s.WeatherAt(community.Coordinates.Lat, community.Coordinates.Lon, community.Name), nil
}

// WeatherAt generates a synthetic weather report for an arbitrary point.
func (s *Service) WeatherAt(lat, lon float64, name string) WeatherReport {
	s.metrics.WeatherReports.Inc()
	return WeatherReport{
		Location: name,
		Current:  s.weather.Current(lat, lon, name),
		Forecast: s.weather.Forecast(lat, lon, name),
	}
}
