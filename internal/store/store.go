// Package store defines the content store contract and its Postgres
// implementation. The rest of the service only sees the interfaces, so
// the hosted store can be swapped without touching resolution logic.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/aurorahq/akfeed/internal/domain"
)

// ErrNotFound is returned by single-row lookups with no matching row.
var ErrNotFound = errors.New("store: not found")

// FrontPageFetchLimit caps the newest-item query feeding categorization.
const FrontPageFetchLimit = 100

// Default caps for region-scoped lookups on community pages.
const (
	RegionNewsLimit     = 6
	RegionBusinessLimit = 8
)

// ContentStore is the query surface for editorial content.
type ContentStore interface {
	Ping(ctx context.Context) error

	ListRegions(ctx context.Context) ([]domain.Region, error)
	GetRegionBySlug(ctx context.Context, slug string) (domain.Region, error)
	UpsertRegion(ctx context.Context, r *domain.Region) error

	// ListNews returns up to limit items, most recently created first.
	ListNews(ctx context.Context, limit int) ([]domain.NewsItem, error)
	// ListNewsByRegion returns up to limit items for a region, newest first.
	ListNewsByRegion(ctx context.Context, regionID string, limit int) ([]domain.NewsItem, error)
	GetNewsItem(ctx context.Context, id string) (domain.NewsItem, error)
	InsertNewsItem(ctx context.Context, item *domain.NewsItem) error
	UpdateNewsItem(ctx context.Context, item *domain.NewsItem) error
	DeleteNewsItem(ctx context.Context, id string) error
	CountNews(ctx context.Context) (int, error)

	ListBusinessesByRegion(ctx context.Context, regionID string, limit int) ([]domain.LocalBusiness, error)
	InsertBusiness(ctx context.Context, b *domain.LocalBusiness) error
	UpdateBusiness(ctx context.Context, b *domain.LocalBusiness) error
	DeleteBusiness(ctx context.Context, id string) error

	ListResourcesByRegion(ctx context.Context, regionID string, limit int) ([]domain.PublicResource, error)
	ListFeaturedResources(ctx context.Context, limit int) ([]domain.PublicResource, error)
	InsertResource(ctx context.Context, r *domain.PublicResource) error
	UpdateResource(ctx context.Context, r *domain.PublicResource) error
	DeleteResource(ctx context.Context, id string) error

	ListWeeklyReports(ctx context.Context, limit int) ([]domain.WeeklyReport, error)
	LatestWeeklyReport(ctx context.Context) (domain.WeeklyReport, error)
	InsertWeeklyReport(ctx context.Context, r *domain.WeeklyReport) error
	UpdateWeeklyReport(ctx context.Context, r *domain.WeeklyReport) error
	DeleteWeeklyReport(ctx context.Context, id string) error

	SaveMediaObject(ctx context.Context, m *MediaObject) error
	GetMediaObject(ctx context.Context, path string) (MediaObject, error)
	DeleteMediaObject(ctx context.Context, path string) error
}

// MediaObject is an uploaded asset (news images, report attachments)
// stored alongside the content rather than in a separate blob service.
type MediaObject struct {
	Path        string    `db:"path" json:"path"`
	ContentType string    `db:"content_type" json:"content_type"`
	Data        []byte    `db:"data" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// User is an account row. PasswordHash never leaves this package's callers.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Roles recognized by the authorization middleware.
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

// UserStore is the query surface for accounts, roles, and favorites.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)

	GetUserRole(ctx context.Context, userID string) (string, error)
	SetUserRole(ctx context.Context, userID, role string) error

	AddFavorite(ctx context.Context, userID, newsItemID string) error
	RemoveFavorite(ctx context.Context, userID, newsItemID string) error
	ListFavorites(ctx context.Context, userID string, limit int) ([]domain.NewsItem, error)
}
