package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/observability"
)

// PgStore implements ContentStore and UserStore on Postgres via sqlx.
type PgStore struct {
	db      *sqlx.DB
	metrics *observability.Metrics
}

// NewPgStore wraps an opened database handle.
func NewPgStore(db *sql.DB, metrics *observability.Metrics) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres"), metrics: metrics}
}

// RunMigrations creates the schema if it does not exist. Idempotent.
func RunMigrations(db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS regions(
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  coordinates JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS news_items(
  id UUID PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  published_at TIMESTAMPTZ,
  region_id UUID REFERENCES regions(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_news_items_created ON news_items(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_news_items_region ON news_items(region_id);

CREATE TABLE IF NOT EXISTS local_businesses(
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  website_url TEXT NOT NULL DEFAULT '',
  region_id UUID REFERENCES regions(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_local_businesses_region ON local_businesses(region_id);

CREATE TABLE IF NOT EXISTS public_resources(
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  website_url TEXT NOT NULL DEFAULT '',
  hours TEXT NOT NULL DEFAULT '',
  is_featured BOOLEAN NOT NULL DEFAULT false,
  region_id UUID REFERENCES regions(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_public_resources_region ON public_resources(region_id);

CREATE TABLE IF NOT EXISTS weekly_reports(
  id UUID PRIMARY KEY,
  title TEXT NOT NULL,
  week_of DATE NOT NULL,
  body TEXT NOT NULL DEFAULT '',
  video_url TEXT NOT NULL DEFAULT '',
  published_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_weekly_reports_week ON weekly_reports(week_of DESC);

CREATE TABLE IF NOT EXISTS media_objects(
  path TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  data BYTEA NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users(
  id UUID PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_roles(
  user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  role TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_favorites(
  user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  news_item_id UUID NOT NULL REFERENCES news_items(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (user_id, news_item_id)
);
`
	_, err := db.Exec(initSQL)
	return err
}

// observe records a store query outcome for the given table.
func (p *PgStore) observe(table string, err error) {
	if p.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil && !errors.Is(err, ErrNotFound) {
		outcome = "error"
	}
	p.metrics.StoreQueries.WithLabelValues(table, outcome).Inc()
}

func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// --- regions ---

const regionColumns = "id, name, slug, description, coordinates, created_at"

func (p *PgStore) ListRegions(ctx context.Context) (_ []domain.Region, err error) {
	defer func() { p.observe("regions", err) }()

	rows := []domain.Region{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+regionColumns+` FROM regions ORDER BY name`)
	return rows, err
}

func (p *PgStore) GetRegionBySlug(ctx context.Context, slug string) (_ domain.Region, err error) {
	defer func() { p.observe("regions", err) }()

	var r domain.Region
	err = p.db.GetContext(ctx, &r,
		`SELECT `+regionColumns+` FROM regions WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Region{}, ErrNotFound
	}
	return r, err
}

func (p *PgStore) UpsertRegion(ctx context.Context, r *domain.Region) (err error) {
	defer func() { p.observe("regions", err) }()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO regions (id, name, slug, description, coordinates)
VALUES ($1, $2, $3, $4, $5::jsonb)
ON CONFLICT (slug) DO UPDATE SET
  name = EXCLUDED.name,
  description = EXCLUDED.description,
  coordinates = EXCLUDED.coordinates`,
		r.ID, r.Name, r.Slug, r.Description, r.Coordinates)
	return err
}

// --- news items ---

const newsColumns = "id, title, description, url, source, category, image_url, published_at, region_id, created_at"

// newsRow adapts nullable columns to the domain type.
type newsRow struct {
	domain.NewsItem
	RegionID sql.NullString `db:"region_id"`
}

func newsRows(rows []newsRow) []domain.NewsItem {
	out := make([]domain.NewsItem, len(rows))
	for i, r := range rows {
		out[i] = r.NewsItem
		out[i].RegionID = r.RegionID.String
	}
	return out
}

func (p *PgStore) ListNews(ctx context.Context, limit int) (_ []domain.NewsItem, err error) {
	defer func() { p.observe("news_items", err) }()

	if limit <= 0 || limit > FrontPageFetchLimit {
		limit = FrontPageFetchLimit
	}
	rows := []newsRow{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+newsColumns+` FROM news_items ORDER BY created_at DESC LIMIT $1`, limit)
	return newsRows(rows), err
}

func (p *PgStore) ListNewsByRegion(ctx context.Context, regionID string, limit int) (_ []domain.NewsItem, err error) {
	defer func() { p.observe("news_items", err) }()

	if limit <= 0 {
		limit = RegionNewsLimit
	}
	rows := []newsRow{}
	err = p.db.SelectContext(ctx, &rows, `
SELECT `+newsColumns+` FROM news_items
WHERE region_id = $1
ORDER BY published_at DESC NULLS LAST, created_at DESC
LIMIT $2`, regionID, limit)
	return newsRows(rows), err
}

func (p *PgStore) GetNewsItem(ctx context.Context, id string) (_ domain.NewsItem, err error) {
	defer func() { p.observe("news_items", err) }()

	var row newsRow
	err = p.db.GetContext(ctx, &row,
		`SELECT `+newsColumns+` FROM news_items WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewsItem{}, ErrNotFound
	}
	item := row.NewsItem
	item.RegionID = row.RegionID.String
	return item, err
}

func (p *PgStore) InsertNewsItem(ctx context.Context, item *domain.NewsItem) (err error) {
	defer func() { p.observe("news_items", err) }()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO news_items (id, title, description, url, source, category, image_url, published_at, region_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Title, item.Description, item.URL, item.Source, item.Category,
		item.ImageURL, item.PublishedAt, nullable(item.RegionID), item.CreatedAt)
	return err
}

func (p *PgStore) UpdateNewsItem(ctx context.Context, item *domain.NewsItem) (err error) {
	defer func() { p.observe("news_items", err) }()

	res, err := p.db.ExecContext(ctx, `
UPDATE news_items SET
  title = $2, description = $3, url = $4, source = $5, category = $6,
  image_url = $7, published_at = $8, region_id = $9
WHERE id = $1`,
		item.ID, item.Title, item.Description, item.URL, item.Source, item.Category,
		item.ImageURL, item.PublishedAt, nullable(item.RegionID))
	return rowsAffectedErr(res, err)
}

func (p *PgStore) DeleteNewsItem(ctx context.Context, id string) (err error) {
	defer func() { p.observe("news_items", err) }()

	res, err := p.db.ExecContext(ctx, `DELETE FROM news_items WHERE id = $1`, id)
	return rowsAffectedErr(res, err)
}

func (p *PgStore) CountNews(ctx context.Context) (_ int, err error) {
	defer func() { p.observe("news_items", err) }()

	var n int
	err = p.db.GetContext(ctx, &n, `SELECT count(*) FROM news_items`)
	return n, err
}

// --- local businesses ---

const businessColumns = "id, name, category, description, city, address, contact_phone, contact_email, website_url, region_id, created_at"

func (p *PgStore) ListBusinessesByRegion(ctx context.Context, regionID string, limit int) (_ []domain.LocalBusiness, err error) {
	defer func() { p.observe("local_businesses", err) }()

	if limit <= 0 {
		limit = RegionBusinessLimit
	}
	rows := []domain.LocalBusiness{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+businessColumns+` FROM local_businesses WHERE region_id = $1 LIMIT $2`,
		regionID, limit)
	return rows, err
}

func (p *PgStore) InsertBusiness(ctx context.Context, b *domain.LocalBusiness) (err error) {
	defer func() { p.observe("local_businesses", err) }()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO local_businesses (id, name, category, description, city, address, contact_phone, contact_email, website_url, region_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.Name, b.Category, b.Description, b.City, b.Address,
		b.ContactPhone, b.ContactEmail, b.WebsiteURL, nullable(b.RegionID), b.CreatedAt)
	return err
}

func (p *PgStore) UpdateBusiness(ctx context.Context, b *domain.LocalBusiness) (err error) {
	defer func() { p.observe("local_businesses", err) }()

	res, err := p.db.ExecContext(ctx, `
UPDATE local_businesses SET
  name = $2, category = $3, description = $4, city = $5, address = $6,
  contact_phone = $7, contact_email = $8, website_url = $9, region_id = $10
WHERE id = $1`,
		b.ID, b.Name, b.Category, b.Description, b.City, b.Address,
		b.ContactPhone, b.ContactEmail, b.WebsiteURL, nullable(b.RegionID))
	return rowsAffectedErr(res, err)
}

func (p *PgStore) DeleteBusiness(ctx context.Context, id string) (err error) {
	defer func() { p.observe("local_businesses", err) }()

	res, err := p.db.ExecContext(ctx, `DELETE FROM local_businesses WHERE id = $1`, id)
	return rowsAffectedErr(res, err)
}

// --- public resources ---

const resourceColumns = "id, name, category, description, city, address, contact_phone, contact_email, website_url, hours, is_featured, region_id, created_at"

// resourceRow adapts the nullable region column to the domain type.
type resourceRow struct {
	domain.PublicResource
	RegionID sql.NullString `db:"region_id"`
}

func resourceRows(rows []resourceRow) []domain.PublicResource {
	out := make([]domain.PublicResource, len(rows))
	for i, r := range rows {
		out[i] = r.PublicResource
		out[i].RegionID = r.RegionID.String
	}
	return out
}

func (p *PgStore) ListResourcesByRegion(ctx context.Context, regionID string, limit int) (_ []domain.PublicResource, err error) {
	defer func() { p.observe("public_resources", err) }()

	if limit <= 0 {
		limit = RegionBusinessLimit
	}
	rows := []resourceRow{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+resourceColumns+` FROM public_resources WHERE region_id = $1 LIMIT $2`,
		regionID, limit)
	return resourceRows(rows), err
}

func (p *PgStore) ListFeaturedResources(ctx context.Context, limit int) (_ []domain.PublicResource, err error) {
	defer func() { p.observe("public_resources", err) }()

	if limit <= 0 {
		limit = RegionBusinessLimit
	}
	rows := []resourceRow{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+resourceColumns+` FROM public_resources WHERE is_featured ORDER BY name LIMIT $1`,
		limit)
	return resourceRows(rows), err
}

func (p *PgStore) InsertResource(ctx context.Context, r *domain.PublicResource) (err error) {
	defer func() { p.observe("public_resources", err) }()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO public_resources (id, name, category, description, city, address, contact_phone, contact_email, website_url, hours, is_featured, region_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.Name, r.Category, r.Description, r.City, r.Address, r.ContactPhone,
		r.ContactEmail, r.WebsiteURL, r.Hours, r.IsFeatured, nullable(r.RegionID), r.CreatedAt)
	return err
}

func (p *PgStore) UpdateResource(ctx context.Context, r *domain.PublicResource) (err error) {
	defer func() { p.observe("public_resources", err) }()

	res, err := p.db.ExecContext(ctx, `
UPDATE public_resources SET
  name = $2, category = $3, description = $4, city = $5, address = $6,
  contact_phone = $7, contact_email = $8, website_url = $9, hours = $10,
  is_featured = $11, region_id = $12
WHERE id = $1`,
		r.ID, r.Name, r.Category, r.Description, r.City, r.Address, r.ContactPhone,
		r.ContactEmail, r.WebsiteURL, r.Hours, r.IsFeatured, nullable(r.RegionID))
	return rowsAffectedErr(res, err)
}

func (p *PgStore) DeleteResource(ctx context.Context, id string) (err error) {
	defer func() { p.observe("public_resources", err) }()

	res, err := p.db.ExecContext(ctx, `DELETE FROM public_resources WHERE id = $1`, id)
	return rowsAffectedErr(res, err)
}

// --- weekly reports ---

const reportColumns = "id, title, week_of, body, video_url, published_at, created_at"

func (p *PgStore) ListWeeklyReports(ctx context.Context, limit int) (_ []domain.WeeklyReport, err error) {
	defer func() { p.observe("weekly_reports", err) }()

	if limit <= 0 {
		limit = 12
	}
	rows := []domain.WeeklyReport{}
	err = p.db.SelectContext(ctx, &rows,
		`SELECT `+reportColumns+` FROM weekly_reports ORDER BY week_of DESC LIMIT $1`, limit)
	return rows, err
}

func (p *PgStore) LatestWeeklyReport(ctx context.Context) (_ domain.WeeklyReport, err error) {
	defer func() { p.observe("weekly_reports", err) }()

	var r domain.WeeklyReport
	err = p.db.GetContext(ctx, &r,
		`SELECT `+reportColumns+` FROM weekly_reports ORDER BY week_of DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WeeklyReport{}, ErrNotFound
	}
	return r, err
}

func (p *PgStore) InsertWeeklyReport(ctx context.Context, r *domain.WeeklyReport) (err error) {
	defer func() { p.observe("weekly_reports", err) }()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO weekly_reports (id, title, week_of, body, video_url, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.Title, r.WeekOf, r.Body, r.VideoURL, r.PublishedAt, r.CreatedAt)
	return err
}

func (p *PgStore) UpdateWeeklyReport(ctx context.Context, r *domain.WeeklyReport) (err error) {
	defer func() { p.observe("weekly_reports", err) }()

	res, err := p.db.ExecContext(ctx, `
UPDATE weekly_reports SET title = $2, week_of = $3, body = $4, video_url = $5, published_at = $6
WHERE id = $1`,
		r.ID, r.Title, r.WeekOf, r.Body, r.VideoURL, r.PublishedAt)
	return rowsAffectedErr(res, err)
}

func (p *PgStore) DeleteWeeklyReport(ctx context.Context, id string) (err error) {
	defer func() { p.observe("weekly_reports", err) }()

	res, err := p.db.ExecContext(ctx, `DELETE FROM weekly_reports WHERE id = $1`, id)
	return rowsAffectedErr(res, err)
}

// --- media objects ---

func (p *PgStore) SaveMediaObject(ctx context.Context, m *MediaObject) (err error) {
	defer func() { p.observe("media_objects", err) }()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO media_objects (path, content_type, data, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (path) DO UPDATE SET content_type = EXCLUDED.content_type, data = EXCLUDED.data`,
		m.Path, m.ContentType, m.Data, m.CreatedAt)
	return err
}

func (p *PgStore) GetMediaObject(ctx context.Context, path string) (_ MediaObject, err error) {
	defer func() { p.observe("media_objects", err) }()

	var m MediaObject
	err = p.db.GetContext(ctx, &m, `
SELECT path, content_type, data, created_at FROM media_objects WHERE path = $1`, path)
	if errors.Is(err, sql.ErrNoRows) {
		return MediaObject{}, ErrNotFound
	}
	return m, err
}

func (p *PgStore) DeleteMediaObject(ctx context.Context, path string) (err error) {
	defer func() { p.observe("media_objects", err) }()

	res, err := p.db.ExecContext(ctx, `DELETE FROM media_objects WHERE path = $1`, path)
	return rowsAffectedErr(res, err)
}

// --- users, roles, favorites ---

func (p *PgStore) CreateUser(ctx context.Context, email, passwordHash string) (_ User, err error) {
	defer func() { p.observe("users", err) }()

	u := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (p *PgStore) GetUserByEmail(ctx context.Context, email string) (_ User, err error) {
	defer func() { p.observe("users", err) }()

	var u User
	err = p.db.GetContext(ctx, &u,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (p *PgStore) GetUserByID(ctx context.Context, id string) (_ User, err error) {
	defer func() { p.observe("users", err) }()

	var u User
	err = p.db.GetContext(ctx, &u,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (p *PgStore) GetUserRole(ctx context.Context, userID string) (_ string, err error) {
	defer func() { p.observe("user_roles", err) }()

	var role string
	err = p.db.GetContext(ctx, &role,
		`SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return RoleReader, nil
	}
	return role, err
}

func (p *PgStore) SetUserRole(ctx context.Context, userID, role string) (err error) {
	defer func() { p.observe("user_roles", err) }()

	_, err = p.db.ExecContext(ctx, `
INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`, userID, role)
	return err
}

func (p *PgStore) AddFavorite(ctx context.Context, userID, newsItemID string) (err error) {
	defer func() { p.observe("user_favorites", err) }()

	_, err = p.db.ExecContext(ctx, `
INSERT INTO user_favorites (user_id, news_item_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`, userID, newsItemID)
	return err
}

func (p *PgStore) RemoveFavorite(ctx context.Context, userID, newsItemID string) (err error) {
	defer func() { p.observe("user_favorites", err) }()

	_, err = p.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND news_item_id = $2`,
		userID, newsItemID)
	return err
}

func (p *PgStore) ListFavorites(ctx context.Context, userID string, limit int) (_ []domain.NewsItem, err error) {
	defer func() { p.observe("user_favorites", err) }()

	if limit <= 0 {
		limit = 50
	}
	rows := []newsRow{}
	err = p.db.SelectContext(ctx, &rows, `
SELECT n.id, n.title, n.description, n.url, n.source, n.category, n.image_url,
       n.published_at, n.region_id, n.created_at
FROM user_favorites f
JOIN news_items n ON n.id = f.news_item_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC
LIMIT $2`, userID, limit)
	return newsRows(rows), err
}

// --- helpers ---

// nullable maps an empty string to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// rowsAffectedErr converts a zero-row write into ErrNotFound.
func rowsAffectedErr(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
