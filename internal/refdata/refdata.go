// Package refdata holds the read-only reference datasets that back
// content the store does not: community records, city centerpoints,
// region seed rows, and per-category fallback news samples. The data is
// embedded at build time and validated once at load, keeping the static
// dictionaries decoupled from the live store so either can change
// independently.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aurorahq/akfeed/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// Dataset is the loaded reference data.
type Dataset struct {
	// Communities is keyed by lowercase slug.
	Communities map[string]domain.Community
	// Cities maps a city name to its centerpoint for marker placement.
	Cities map[string]domain.Coordinate
	// Regions are the seed rows for the content store's regions table.
	Regions []domain.Region
	// SampleNews maps a category ID to its fallback item list.
	SampleNews map[string][]domain.NewsItem
}

var (
	loadOnce sync.Once
	loaded   *Dataset
	loadErr  error
)

// Load parses and validates the embedded datasets. The result is cached;
// subsequent calls return the same Dataset.
func Load() (*Dataset, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load()
	})
	return loaded, loadErr
}

func load() (*Dataset, error) {
	ds := &Dataset{}

	var communities []domain.Community
	if err := readJSON("data/communities.json", &communities); err != nil {
		return nil, err
	}
	ds.Communities = make(map[string]domain.Community, len(communities))
	for _, c := range communities {
		slug := strings.ToLower(c.Slug)
		if slug == "" || slug != c.Slug {
			return nil, fmt.Errorf("refdata: community %q has invalid slug %q", c.Name, c.Slug)
		}
		if _, dup := ds.Communities[slug]; dup {
			return nil, fmt.Errorf("refdata: duplicate community slug %q", slug)
		}
		ds.Communities[slug] = c
	}

	if err := readJSON("data/cities.json", &ds.Cities); err != nil {
		return nil, err
	}
	if err := readJSON("data/regions.json", &ds.Regions); err != nil {
		return nil, err
	}
	if err := readJSON("data/sample_news.json", &ds.SampleNews); err != nil {
		return nil, err
	}

	return ds, nil
}

func readJSON(path string, v any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("refdata: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("refdata: parse %s: %w", path, err)
	}
	return nil
}

// CommunityBySlug looks up a community by exact slug, case-insensitively.
// There is no fuzzy matching: a typo returns false.
func (d *Dataset) CommunityBySlug(slug string) (domain.Community, bool) {
	c, ok := d.Communities[strings.ToLower(slug)]
	return c, ok
}
