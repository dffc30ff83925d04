package domain

import "strings"

// MaxPerCategory caps every front-page bucket, including the catch-all.
const MaxPerCategory = 6

// GeneralCategory is the trailing catch-all bucket for items matching no keyword.
const GeneralCategory = "general"

// Category is one entry in the fixed front-page taxonomy.
type Category struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// Categories is the fixed, ordered front-page taxonomy. Order matters:
// earlier categories take priority under first-match assignment, and the
// catch-all must stay last. Keywords are lowercase substrings.
var Categories = []Category{
	{
		ID:    "government",
		Label: "Politics & Government",
		Keywords: []string{
			"state", "legislature", "governor", "senate", "assembly",
			"election", "borough", "policy", "permanent fund",
		},
	},
	{
		ID:    "resources",
		Label: "Mining & Resources",
		Keywords: []string{
			"gold", "mine", "mining", "oil", "gas", "drilling",
			"pipeline", "petroleum", "timber",
		},
	},
	{
		ID:    "fishing",
		Label: "Fishing & Seafood",
		Keywords: []string{
			"fish", "salmon", "crab", "halibut", "seafood",
			"hatchery", "bycatch", "trawl",
		},
	},
	{
		ID:    "wildlife",
		Label: "Wildlife & Outdoors",
		Keywords: []string{
			"bear", "moose", "caribou", "whale", "wildlife",
			"hunting", "trail", "denali",
		},
	},
	{
		ID:    "transportation",
		Label: "Transportation",
		Keywords: []string{
			"ferry", "highway", "airport", "flight", "airline",
			"railroad", "road closure",
		},
	},
	{
		ID:    "weather",
		Label: "Weather & Safety",
		Keywords: []string{
			"storm", "snow", "avalanche", "earthquake", "flood",
			"wildfire", "tsunami",
		},
	},
	{
		ID:    "community",
		Label: "Community",
		Keywords: []string{
			"school", "festival", "tribal", "village", "council",
			"iditarod", "potlatch",
		},
	},
	{ID: GeneralCategory, Label: "General News"},
}

// CategorizeNews assigns each item to exactly one category bucket using
// first-match keyword scanning. Items arrive most-recent-first and keep
// that order within buckets. A bucket never exceeds MaxPerCategory;
// items matching a full bucket are truncated. Items matching nothing
// land in the general catch-all, which carries the same cap. Every
// category appears in the result, empty or not.
func CategorizeNews(items []NewsItem) map[string][]NewsItem {
	buckets := make(map[string][]NewsItem, len(Categories))
	for _, c := range Categories {
		buckets[c.ID] = []NewsItem{}
	}

	for _, item := range items {
		id := matchCategory(item)
		if len(buckets[id]) < MaxPerCategory {
			buckets[id] = append(buckets[id], item)
		}
	}
	return buckets
}

// matchCategory returns the ID of the first category with a keyword
// contained in the item's lowercased title, description, or source
// category. The catch-all is skipped during scanning and returned when
// nothing matches.
func matchCategory(item NewsItem) string {
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	srcCat := strings.ToLower(item.Category)

	for _, c := range Categories {
		if c.ID == GeneralCategory {
			continue
		}
		for _, kw := range c.Keywords {
			if strings.Contains(title, kw) || strings.Contains(desc, kw) || strings.Contains(srcCat, kw) {
				return c.ID
			}
		}
	}
	return GeneralCategory
}

// ApplyFallbackSamples replaces empty buckets with that category's static
// sample list so the front page never shows an empty section when live
// data is sparse. Samples longer than the cap are truncated. Buckets
// with live items are left untouched.
func ApplyFallbackSamples(buckets, samples map[string][]NewsItem) map[string][]NewsItem {
	for id, bucket := range buckets {
		if len(bucket) > 0 {
			continue
		}
		sample := samples[id]
		if len(sample) > MaxPerCategory {
			sample = sample[:MaxPerCategory]
		}
		buckets[id] = sample
	}
	return buckets
}
