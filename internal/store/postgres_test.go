package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurorahq/akfeed/internal/domain"
)

func TestNullableRegionID(t *testing.T) {
	// An optional region foreign key must reach the uuid column as NULL;
	// an empty string is invalid uuid input and fails the whole write.
	assert.Nil(t, nullable(""))
	assert.Equal(t, "0e3f6f2a-4a92-4f7e-9a41-97c1f2f2a001", nullable("0e3f6f2a-4a92-4f7e-9a41-97c1f2f2a001"))
}

func TestResourceRowsNullRegion(t *testing.T) {
	rows := []resourceRow{
		{
			PublicResource: domain.PublicResource{ID: "r1", Name: "Harbor Office", IsFeatured: true},
		},
		{
			PublicResource: domain.PublicResource{ID: "r2", Name: "Visitor Center"},
			RegionID:       sql.NullString{String: "reg-1", Valid: true},
		},
	}

	out := resourceRows(rows)
	assert.Equal(t, "", out[0].RegionID)
	assert.True(t, out[0].IsFeatured)
	assert.Equal(t, "reg-1", out[1].RegionID)
}

func TestNewsRowsNullRegion(t *testing.T) {
	rows := []newsRow{
		{NewsItem: domain.NewsItem{ID: "n1", Title: "Ferry schedule changes"}},
		{
			NewsItem: domain.NewsItem{ID: "n2", Title: "Budget signed"},
			RegionID: sql.NullString{String: "reg-2", Valid: true},
		},
	}

	out := newsRows(rows)
	assert.Equal(t, "", out[0].RegionID)
	assert.Equal(t, "reg-2", out[1].RegionID)
}
