package domain

import "time"

// NewsItem is a single news story as stored in the content store.
// Categorization is computed at read time and never persisted.
type NewsItem struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description,omitempty"`
	URL         string     `db:"url" json:"url"`
	Source      string     `db:"source" json:"source,omitempty"`
	Category    string     `db:"category" json:"category,omitempty"`
	ImageURL    string     `db:"image_url" json:"image_url,omitempty"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	RegionID    string     `db:"region_id" json:"region_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// LocalBusiness is a partner business listed on a region page.
// Businesses carry no stored coordinates; map placement is approximated
// from the City field.
type LocalBusiness struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Description  string    `db:"description" json:"description,omitempty"`
	City         string    `db:"city" json:"city,omitempty"`
	Address      string    `db:"address" json:"address,omitempty"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone,omitempty"`
	ContactEmail string    `db:"contact_email" json:"contact_email,omitempty"`
	WebsiteURL   string    `db:"website_url" json:"website_url,omitempty"`
	RegionID     string    `db:"region_id" json:"region_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PublicResource is a government or community service entry (DMV office,
// health clinic, tribal office). Same placement rules as businesses.
type PublicResource struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Description  string    `db:"description" json:"description,omitempty"`
	City         string    `db:"city" json:"city,omitempty"`
	Address      string    `db:"address" json:"address,omitempty"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone,omitempty"`
	ContactEmail string    `db:"contact_email" json:"contact_email,omitempty"`
	WebsiteURL   string    `db:"website_url" json:"website_url,omitempty"`
	Hours        string    `db:"hours" json:"hours,omitempty"`
	IsFeatured   bool      `db:"is_featured" json:"is_featured"`
	RegionID     string    `db:"region_id" json:"region_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// WeeklyReport is an editor-published weekly news roundup.
type WeeklyReport struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	WeekOf      time.Time  `db:"week_of" json:"week_of"`
	Body        string     `db:"body" json:"body"`
	VideoURL    string     `db:"video_url" json:"video_url,omitempty"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// CommunityType distinguishes incorporated cities from smaller settlements.
type CommunityType string

const (
	CommunityCity       CommunityType = "city"
	CommunitySettlement CommunityType = "community"
)

// Community is a static descriptive record for a named city or settlement.
// Communities live in the embedded reference dataset, not in the content
// store; Region is a display name that may or may not map to a stored
// region row (see the package doc on Western).
type Community struct {
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Type        CommunityType `json:"type"`
	Population  int           `json:"population"`
	Region      string        `json:"region"`
	Coordinates Coordinate    `json:"coordinates"`
	Airport     string        `json:"airport,omitempty"`
	Contact     string        `json:"contact,omitempty"`
	Industries  []string      `json:"industries,omitempty"`
	Attractions []string      `json:"attractions,omitempty"`
	History     string        `json:"history,omitempty"`
}

// regionSlugs maps a region display name to its content-store slug.
// Western is intentionally absent: no region row exists for it.
var regionSlugs = map[string]string{
	"Southeast":    "southeast",
	"Southcentral": "southcentral",
	"Interior":     "interior",
	"Southwest":    "southwest",
	"Northern":     "northern",
}

// RegionSlugForDisplayName resolves a region display name (as carried by
// community records) to the content-store region slug. The second return
// is false for unknown names and for Western.
func RegionSlugForDisplayName(name string) (string, bool) {
	slug, ok := regionSlugs[name]
	return slug, ok
}
