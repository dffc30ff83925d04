package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsItem(id, title, desc string) NewsItem {
	return NewsItem{ID: id, Title: title, Description: desc, URL: "https://example.com/" + id}
}

func TestCategorizeNews(t *testing.T) {
	t.Run("keyword routes to category", func(t *testing.T) {
		items := []NewsItem{
			newsItem("n1", "Sockeye salmon run sets record on the Kenai", ""),
			newsItem("n2", "Ferry schedule changes for Southeast", ""),
			newsItem("n3", "Avalanche warning issued for Hatcher Pass", ""),
		}

		buckets := CategorizeNews(items)

		require.Len(t, buckets["fishing"], 1)
		assert.Equal(t, "n1", buckets["fishing"][0].ID)
		require.Len(t, buckets["transportation"], 1)
		assert.Equal(t, "n2", buckets["transportation"][0].ID)
		require.Len(t, buckets["weather"], 1)
		assert.Equal(t, "n3", buckets["weather"][0].ID)
	})

	t.Run("first declared category wins", func(t *testing.T) {
		// "state" (government) and "gold" (resources) both match;
		// government is declared first.
		items := []NewsItem{newsItem("n1", "State weighs new gold mine permits", "")}

		buckets := CategorizeNews(items)

		require.Len(t, buckets["government"], 1)
		assert.Empty(t, buckets["resources"])
	})

	t.Run("substring match has no word boundaries", func(t *testing.T) {
		items := []NewsItem{newsItem("n1", "Oilfield jobs rebound on the North Slope", "")}

		buckets := CategorizeNews(items)

		require.Len(t, buckets["resources"], 1)
	})

	t.Run("matches against description and source category", func(t *testing.T) {
		byDesc := newsItem("n1", "Weekend roundup", "halibut openers announced")
		byCat := newsItem("n2", "Weekend roundup", "")
		byCat.Category = "Salmon fisheries"

		buckets := CategorizeNews([]NewsItem{byDesc, byCat})

		require.Len(t, buckets["fishing"], 2)
	})

	t.Run("unmatched items land in general", func(t *testing.T) {
		items := []NewsItem{newsItem("n1", "Quiet week around town", "nothing notable")}

		buckets := CategorizeNews(items)

		require.Len(t, buckets[GeneralCategory], 1)
		assert.Equal(t, "n1", buckets[GeneralCategory][0].ID)
	})

	t.Run("buckets cap at six and truncate in input order", func(t *testing.T) {
		var items []NewsItem
		for i := 0; i < 10; i++ {
			items = append(items, newsItem(fmt.Sprintf("n%d", i), fmt.Sprintf("Salmon story %d", i), ""))
		}

		buckets := CategorizeNews(items)

		require.Len(t, buckets["fishing"], MaxPerCategory)
		for i := 0; i < MaxPerCategory; i++ {
			assert.Equal(t, fmt.Sprintf("n%d", i), buckets["fishing"][i].ID)
		}
	})

	t.Run("general bucket carries the same cap", func(t *testing.T) {
		var items []NewsItem
		for i := 0; i < 9; i++ {
			items = append(items, newsItem(fmt.Sprintf("n%d", i), "Quiet day", ""))
		}

		buckets := CategorizeNews(items)

		assert.Len(t, buckets[GeneralCategory], MaxPerCategory)
	})

	t.Run("every category appears in the result", func(t *testing.T) {
		buckets := CategorizeNews(nil)

		require.Len(t, buckets, len(Categories))
		for _, c := range Categories {
			_, ok := buckets[c.ID]
			assert.True(t, ok, "missing bucket %s", c.ID)
		}
	})

	t.Run("deterministic for fixed input order", func(t *testing.T) {
		items := []NewsItem{
			newsItem("n1", "State budget passes", ""),
			newsItem("n2", "Moose on the loose downtown", ""),
			newsItem("n3", "Quiet week", ""),
		}

		first := CategorizeNews(items)
		second := CategorizeNews(items)

		assert.Equal(t, first, second)
	})

	t.Run("no item assigned to more than one bucket", func(t *testing.T) {
		items := []NewsItem{
			newsItem("n1", "State weighs gold and salmon policy during storm season", ""),
			newsItem("n2", "Ferry to the airport", ""),
		}

		buckets := CategorizeNews(items)

		seen := map[string]int{}
		for _, bucket := range buckets {
			for _, item := range bucket {
				seen[item.ID]++
			}
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "item %s assigned %d times", id, count)
		}
		assert.Len(t, seen, 2)
	})
}

func TestCategoriesShape(t *testing.T) {
	require.NotEmpty(t, Categories)

	last := Categories[len(Categories)-1]
	assert.Equal(t, GeneralCategory, last.ID, "catch-all must be declared last")
	assert.Empty(t, last.Keywords, "catch-all must have no keywords")

	ids := map[string]bool{}
	for _, c := range Categories {
		assert.False(t, ids[c.ID], "duplicate category id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestApplyFallbackSamples(t *testing.T) {
	samples := map[string][]NewsItem{
		"fishing": {newsItem("s1", "Sample salmon story", "")},
		GeneralCategory: {
			newsItem("s2", "Sample one", ""), newsItem("s3", "Sample two", ""),
			newsItem("s4", "Sample three", ""), newsItem("s5", "Sample four", ""),
			newsItem("s6", "Sample five", ""), newsItem("s7", "Sample six", ""),
			newsItem("s8", "Sample seven", ""),
		},
	}

	t.Run("fills empty buckets only", func(t *testing.T) {
		buckets := map[string][]NewsItem{
			"fishing":       {},
			"government":    {newsItem("n1", "State news", "")},
			GeneralCategory: {},
		}

		out := ApplyFallbackSamples(buckets, samples)

		require.Len(t, out["fishing"], 1)
		assert.Equal(t, "s1", out["fishing"][0].ID)
		require.Len(t, out["government"], 1)
		assert.Equal(t, "n1", out["government"][0].ID)
	})

	t.Run("sample lists are capped", func(t *testing.T) {
		buckets := map[string][]NewsItem{GeneralCategory: {}}

		out := ApplyFallbackSamples(buckets, samples)

		assert.Len(t, out[GeneralCategory], MaxPerCategory)
	})

	t.Run("category with no samples stays empty", func(t *testing.T) {
		buckets := map[string][]NewsItem{"wildlife": {}}

		out := ApplyFallbackSamples(buckets, samples)

		assert.Empty(t, out["wildlife"])
	})
}
