package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/store"
)

const frontPageCacheKey = "akfeed:frontpage:v1"

// FrontPage is the categorized front page payload.
type FrontPage struct {
	Categories  map[string][]domain.NewsItem `json:"categories"`
	Fallback    bool                         `json:"fallback"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// FrontPage builds the categorized front page from the newest stored
// items, padding empty sections with sample content. When the store is
// unreachable the whole page is served from samples rather than failing.
// A short-lived cache sits in front of the build when Redis is wired;
// bypass skips the cache read but still refreshes it.
func (s *Service) FrontPage(ctx context.Context, bypass bool) (FrontPage, error) {
	if s.cache != nil {
		if bypass {
			s.metrics.FrontPageCache.WithLabelValues("bypass").Inc()
		} else if page, ok := s.cachedFrontPage(ctx); ok {
			return page, nil
		}
	}

	page := s.buildFrontPage(ctx)

	// A fallback page is never cached: it would pin sample content for
	// the full TTL after a transient store outage.
	if s.cache != nil && !page.Fallback {
		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, frontPageCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("front page cache write failed", "error", err)
			}
		}
	}
	return page, nil
}

func (s *Service) cachedFrontPage(ctx context.Context) (FrontPage, bool) {
	data, err := s.cache.Get(ctx, frontPageCacheKey).Bytes()
	if err != nil {
		s.metrics.FrontPageCache.WithLabelValues("miss").Inc()
		return FrontPage{}, false
	}
	var page FrontPage
	if err := json.Unmarshal(data, &page); err != nil {
		s.logger.Warn("front page cache entry corrupt", "error", err)
		s.metrics.FrontPageCache.WithLabelValues("miss").Inc()
		return FrontPage{}, false
	}
	s.metrics.FrontPageCache.WithLabelValues("hit").Inc()
	return page, true
}

func (s *Service) buildFrontPage(ctx context.Context) FrontPage {
	s.metrics.FrontPageBuilds.Inc()

	items, err := s.store.ListNews(ctx, store.FrontPageFetchLimit)
	if err != nil {
		s.logger.Error("front page store fetch failed, serving samples", "error", err)
		s.metrics.FrontPageFallbacks.Inc()
		return FrontPage{
			Categories:  domain.ApplyFallbackSamples(domain.CategorizeNews(nil), s.data.SampleNews),
			Fallback:    true,
			GeneratedAt: time.Now().UTC(),
		}
	}

	buckets := domain.CategorizeNews(items)
	buckets = domain.ApplyFallbackSamples(buckets, s.data.SampleNews)
	return FrontPage{
		Categories:  buckets,
		GeneratedAt: time.Now().UTC(),
	}
}
