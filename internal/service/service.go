// Package service composes the content store, reference data, and the
// synthetic weather generator into the read models the API serves.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/observability"
	"github.com/aurorahq/akfeed/internal/refdata"
	"github.com/aurorahq/akfeed/internal/store"
)

// EventPublisher pushes publish notifications to downstream consumers.
// It is implemented by adapter/kafka.Publisher.
type EventPublisher interface {
	PublishNews(ctx context.Context, item domain.NewsItem) error
}

// Summarizer drafts short article summaries. It is implemented by
// adapter/xai.Client.
type Summarizer interface {
	SummarizeNews(ctx context.Context, title, body string) (string, error)
}

// PageCache is the slice of the redis client the front page uses.
// Implemented by *redis.Client.
type PageCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Deps are the collaborators a Service needs. Cache and Publisher are
// optional; when nil the corresponding feature is disabled.
type Deps struct {
	Store      store.ContentStore
	Users      store.UserStore
	Data       *refdata.Dataset
	Weather    *domain.WeatherGenerator
	Cache      PageCache
	CacheTTL   time.Duration
	Publisher  EventPublisher
	Summarizer Summarizer
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

// Service holds the application logic behind the HTTP handlers.
type Service struct {
	store      store.ContentStore
	users      store.UserStore
	data       *refdata.Dataset
	weather    *domain.WeatherGenerator
	cache      PageCache
	cacheTTL   time.Duration
	publisher  EventPublisher
	summarizer Summarizer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func New(deps Deps) *Service {
	s := &Service{
		store:      deps.Store,
		users:      deps.Users,
		data:       deps.Data,
		weather:    deps.Weather,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		publisher:  deps.Publisher,
		summarizer: deps.Summarizer,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
	if s.weather == nil {
		s.weather = domain.NewWeatherGenerator(nil)
	}
	if deps.Metrics != nil {
		if deps.Publisher != nil {
			deps.Metrics.EventsEnabled.Set(1)
		} else {
			deps.Metrics.EventsEnabled.Set(0)
		}
	}
	return s
}

// Content exposes the underlying content store for plain CRUD passthrough.
func (s *Service) Content() store.ContentStore { return s.store }

// UserStore exposes the underlying account store.
func (s *Service) UserStore() store.UserStore { return s.users }

// CheckReadiness verifies the content store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("content store unreachable: %w", err)
	}
	return nil
}
