// internal/services/favorite_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/makaohomes/makao-backend/internal/models"
)

func TestNormalizeFavorites(t *testing.T) {
	villa := &models.Property{
		Title:    "Karen Villa",
		Price:    12000000,
		Location: "Karen, Nairobi",
		Bedrooms: 5,
	}
	villa.ID = uuid.New()

	flat := &models.Property{
		Title: "Westlands Flat",
		Price: 6500000,
		Details: models.JSONB{
			"bedrooms": float64(2),
		},
	}
	flat.ID = uuid.New()

	favorites := []models.Favorite{
		{Property: villa},
		{Property: flat},
	}

	got := normalizeFavorites(favorites)
	assert.Len(t, got, 2)
	assert.Equal(t, "Karen Villa", got[0].Title)
	assert.Equal(t, "KSh 12,000,000", got[0].Price)
	assert.Equal(t, 5, got[0].Bedrooms)
	assert.Equal(t, "Westlands Flat", got[1].Title)
	assert.Equal(t, 2, got[1].Bedrooms)
}

func TestNormalizeFavoritesSkipsMissingProperty(t *testing.T) {
	villa := &models.Property{Title: "Karen Villa", Price: 12000000}
	villa.ID = uuid.New()

	favorites := []models.Favorite{
		{Property: villa},
		{Property: nil},
	}

	got := normalizeFavorites(favorites)
	assert.Len(t, got, 1)
	assert.Equal(t, "Karen Villa", got[0].Title)
}

func TestNormalizeFavoritesEmpty(t *testing.T) {
	got := normalizeFavorites(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
