package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/observability"
	"github.com/aurorahq/akfeed/internal/refdata"
	"github.com/aurorahq/akfeed/internal/store"
)

// mockContentStore implements store.ContentStore with overridable
// function fields. Unset methods return zero values.
type mockContentStore struct {
	pingFn                   func(ctx context.Context) error
	listRegionsFn            func(ctx context.Context) ([]domain.Region, error)
	getRegionBySlugFn        func(ctx context.Context, slug string) (domain.Region, error)
	listNewsFn               func(ctx context.Context, limit int) ([]domain.NewsItem, error)
	listNewsByRegionFn       func(ctx context.Context, regionID string, limit int) ([]domain.NewsItem, error)
	getNewsItemFn            func(ctx context.Context, id string) (domain.NewsItem, error)
	insertNewsItemFn         func(ctx context.Context, item *domain.NewsItem) error
	updateNewsItemFn         func(ctx context.Context, item *domain.NewsItem) error
	listBusinessesByRegionFn func(ctx context.Context, regionID string, limit int) ([]domain.LocalBusiness, error)
	listResourcesByRegionFn  func(ctx context.Context, regionID string, limit int) ([]domain.PublicResource, error)
}

func (m *mockContentStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockContentStore) ListRegions(ctx context.Context) ([]domain.Region, error) {
	if m.listRegionsFn != nil {
		return m.listRegionsFn(ctx)
	}
	return nil, nil
}

func (m *mockContentStore) GetRegionBySlug(ctx context.Context, slug string) (domain.Region, error) {
	if m.getRegionBySlugFn != nil {
		return m.getRegionBySlugFn(ctx, slug)
	}
	return domain.Region{}, store.ErrNotFound
}

func (m *mockContentStore) UpsertRegion(ctx context.Context, r *domain.Region) error { return nil }

func (m *mockContentStore) ListNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	if m.listNewsFn != nil {
		return m.listNewsFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockContentStore) ListNewsByRegion(ctx context.Context, regionID string, limit int) ([]domain.NewsItem, error) {
	if m.listNewsByRegionFn != nil {
		return m.listNewsByRegionFn(ctx, regionID, limit)
	}
	return nil, nil
}

func (m *mockContentStore) GetNewsItem(ctx context.Context, id string) (domain.NewsItem, error) {
	if m.getNewsItemFn != nil {
		return m.getNewsItemFn(ctx, id)
	}
	return domain.NewsItem{}, store.ErrNotFound
}

func (m *mockContentStore) InsertNewsItem(ctx context.Context, item *domain.NewsItem) error {
	if m.insertNewsItemFn != nil {
		return m.insertNewsItemFn(ctx, item)
	}
	return nil
}

func (m *mockContentStore) UpdateNewsItem(ctx context.Context, item *domain.NewsItem) error {
	if m.updateNewsItemFn != nil {
		return m.updateNewsItemFn(ctx, item)
	}
	return nil
}
func (m *mockContentStore) DeleteNewsItem(ctx context.Context, id string) error            { return nil }
func (m *mockContentStore) CountNews(ctx context.Context) (int, error)                     { return 0, nil }

func (m *mockContentStore) ListBusinessesByRegion(ctx context.Context, regionID string, limit int) ([]domain.LocalBusiness, error) {
	if m.listBusinessesByRegionFn != nil {
		return m.listBusinessesByRegionFn(ctx, regionID, limit)
	}
	return nil, nil
}

func (m *mockContentStore) InsertBusiness(ctx context.Context, b *domain.LocalBusiness) error {
	return nil
}
func (m *mockContentStore) UpdateBusiness(ctx context.Context, b *domain.LocalBusiness) error {
	return nil
}
func (m *mockContentStore) DeleteBusiness(ctx context.Context, id string) error { return nil }

func (m *mockContentStore) ListResourcesByRegion(ctx context.Context, regionID string, limit int) ([]domain.PublicResource, error) {
	if m.listResourcesByRegionFn != nil {
		return m.listResourcesByRegionFn(ctx, regionID, limit)
	}
	return nil, nil
}

func (m *mockContentStore) ListFeaturedResources(ctx context.Context, limit int) ([]domain.PublicResource, error) {
	return nil, nil
}
func (m *mockContentStore) InsertResource(ctx context.Context, r *domain.PublicResource) error {
	return nil
}
func (m *mockContentStore) UpdateResource(ctx context.Context, r *domain.PublicResource) error {
	return nil
}
func (m *mockContentStore) DeleteResource(ctx context.Context, id string) error { return nil }

func (m *mockContentStore) ListWeeklyReports(ctx context.Context, limit int) ([]domain.WeeklyReport, error) {
	return nil, nil
}
func (m *mockContentStore) LatestWeeklyReport(ctx context.Context) (domain.WeeklyReport, error) {
	return domain.WeeklyReport{}, store.ErrNotFound
}
func (m *mockContentStore) InsertWeeklyReport(ctx context.Context, r *domain.WeeklyReport) error {
	return nil
}
func (m *mockContentStore) UpdateWeeklyReport(ctx context.Context, r *domain.WeeklyReport) error {
	return nil
}
func (m *mockContentStore) DeleteWeeklyReport(ctx context.Context, id string) error { return nil }

func (m *mockContentStore) SaveMediaObject(ctx context.Context, mo *store.MediaObject) error {
	return nil
}
func (m *mockContentStore) GetMediaObject(ctx context.Context, path string) (store.MediaObject, error) {
	return store.MediaObject{}, store.ErrNotFound
}
func (m *mockContentStore) DeleteMediaObject(ctx context.Context, path string) error { return nil }

// mockUserStore implements store.UserStore with overridable fields.
type mockUserStore struct {
	addFavoriteFn   func(ctx context.Context, userID, newsItemID string) error
	listFavoritesFn func(ctx context.Context, userID string, limit int) ([]domain.NewsItem, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, email, passwordHash string) (store.User, error) {
	return store.User{}, nil
}
func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	return store.User{}, store.ErrNotFound
}
func (m *mockUserStore) GetUserByID(ctx context.Context, id string) (store.User, error) {
	return store.User{}, store.ErrNotFound
}
func (m *mockUserStore) GetUserRole(ctx context.Context, userID string) (string, error) {
	return store.RoleReader, nil
}
func (m *mockUserStore) SetUserRole(ctx context.Context, userID, role string) error { return nil }

func (m *mockUserStore) AddFavorite(ctx context.Context, userID, newsItemID string) error {
	if m.addFavoriteFn != nil {
		return m.addFavoriteFn(ctx, userID, newsItemID)
	}
	return nil
}
func (m *mockUserStore) RemoveFavorite(ctx context.Context, userID, newsItemID string) error {
	return nil
}
func (m *mockUserStore) ListFavorites(ctx context.Context, userID string, limit int) ([]domain.NewsItem, error) {
	if m.listFavoritesFn != nil {
		return m.listFavoritesFn(ctx, userID, limit)
	}
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService wires a Service around mocks, the embedded reference
// dataset, and a seeded weather generator.
func newTestService(t *testing.T, content *mockContentStore, users *mockUserStore, publisher EventPublisher) *Service {
	t.Helper()
	data, err := refdata.Load()
	require.NoError(t, err)
	if content == nil {
		content = &mockContentStore{}
	}
	if users == nil {
		users = &mockUserStore{}
	}
	return New(Deps{
		Store:     content,
		Users:     users,
		Data:      data,
		Weather:   domain.NewWeatherGenerator(rand.New(rand.NewSource(1))),
		Publisher: publisher,
		Logger:    discardLogger(),
		Metrics:   observability.NewMetricsForTesting(),
	})
}

// fakeCache implements PageCache over a map and counts writes.
type fakeCache struct {
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

// newCachedTestService is newTestService with a front page cache wired in.
func newCachedTestService(t *testing.T, content *mockContentStore, cache PageCache) *Service {
	t.Helper()
	data, err := refdata.Load()
	require.NoError(t, err)
	if content == nil {
		content = &mockContentStore{}
	}
	return New(Deps{
		Store:    content,
		Users:    &mockUserStore{},
		Data:     data,
		Weather:  domain.NewWeatherGenerator(rand.New(rand.NewSource(1))),
		Cache:    cache,
		CacheTTL: time.Minute,
		Logger:   discardLogger(),
		Metrics:  observability.NewMetricsForTesting(),
	})
}
