// internal/services/normalizer_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/makaohomes/makao-backend/internal/models"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "KSh 5,000,000", FormatPrice(5000000))
	assert.Equal(t, "KSh 1,234,567", FormatPrice(1234567))
	assert.Equal(t, "KSh 999", FormatPrice(999))
	assert.Equal(t, "KSh 1,000", FormatPrice(1000))
	assert.Equal(t, "KSh 0", FormatPrice(0))
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"integer", 5000000, 5000000},
		{"int64", int64(750000), 750000},
		{"json number", float64(1200000), 1200000},
		{"plain digits", "4500000", 4500000},
		{"display string", "KSh 5,000,000", 5000000},
		{"currency prefix", "Ksh 120,000", 120000},
		{"spaces and commas", " 1, 234 ,567 ", 1234567},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrice(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriceRejectsUnparsable(t *testing.T) {
	for _, input := range []interface{}{"", "price on request", "N/A", nil, true} {
		_, err := ParsePrice(input)
		assert.ErrorIs(t, err, ErrInvalidPrice, "input %v should be rejected", input)
	}
}

func TestSqftToSqm(t *testing.T) {
	assert.InDelta(t, 92.9, SqftToSqm(1000), 0.001)
	assert.InDelta(t, 46.5, SqftToSqm(500), 0.001)
	assert.Equal(t, 0.0, SqftToSqm(0))
}

func TestNormalizePropertyColumnWins(t *testing.T) {
	p := &models.Property{
		Title:    "Sunset Villa",
		Price:    9500000,
		Location: "Karen, Nairobi",
		Bedrooms: 4,
		Details: models.JSONB{
			"bedrooms": float64(2),
			"location": "wrong",
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.Equal(t, 4, got.Bedrooms)
	assert.Equal(t, "Karen, Nairobi", got.Location)
	assert.Equal(t, "KSh 9,500,000", got.Price)
	assert.Equal(t, int64(9500000), got.PriceAmount)
}

func TestNormalizePropertyFallsBackToBag(t *testing.T) {
	p := &models.Property{
		Title: "City Apartment",
		Price: 4000000,
		Details: models.JSONB{
			"yearBuilt":   float64(2019),
			"total_floors": float64(12),
			"facing":      "East",
			"sqft":        float64(1000),
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.Equal(t, 2019, got.YearBuilt)
	assert.Equal(t, 12, got.TotalFloors)
	assert.Equal(t, "East", got.Facing)
	assert.InDelta(t, 92.9, got.Sqm, 0.001)
}

func TestNormalizePropertyAmenityUnion(t *testing.T) {
	p := &models.Property{
		Title:     "Garden House",
		Price:     6000000,
		Amenities: pq.StringArray{"Pool", "Gym"},
		Details: models.JSONB{
			"amenities": []interface{}{"gym", "Borehole"},
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	// Case-insensitive dedupe keeps the first spelling seen.
	assert.ElementsMatch(t, []string{"Pool", "Gym", "Borehole"}, got.Amenities)
}

func TestNormalizePropertyBagOnlyAmenities(t *testing.T) {
	p := &models.Property{
		Title: "Studio",
		Price: 2500000,
		Details: models.JSONB{
			"amenities": []interface{}{"Water Tank"},
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.Equal(t, []string{"Water Tank"}, got.Amenities)
}

func TestNormalizePropertyEmptyListsNeverNil(t *testing.T) {
	p := &models.Property{Title: "Bare", Price: 1000000}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.NotNil(t, got.Amenities)
	assert.Len(t, got.Amenities, 0)
	assert.NotNil(t, got.Features)
	assert.NotNil(t, got.NearbyLandmarks)
}

func TestNormalizePropertyLandmarkAliases(t *testing.T) {
	p := &models.Property{
		Title: "Near School",
		Price: 3000000,
		Details: models.JSONB{
			"nearByLandmarks": []interface{}{"Karen Hospital"},
			"nearby_landmarks": []interface{}{"The Hub", "karen hospital"},
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.ElementsMatch(t, []string{"Karen Hospital", "The Hub"}, got.NearbyLandmarks)
}

func TestNormalizePropertyDetailsCanonicalKeys(t *testing.T) {
	p := &models.Property{
		Title: "Penthouse",
		Price: 20000000,
		Details: models.JSONB{
			"yearBuilt":   float64(2021),
			"customField": "kept",
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	_, hasCamel := got.Details["yearBuilt"]
	assert.False(t, hasCamel, "camelCase keys are rewritten to snake_case")
	assert.Equal(t, 2021, got.Details["year_built"])
	assert.Equal(t, "kept", got.Details["custom_field"])
}

func TestNormalizePropertyFirstImage(t *testing.T) {
	p := &models.Property{
		Title: "With Photos",
		Price: 5000000,
		Images: []models.Image{
			{URL: "https://cdn.makaohomes.co.ke/a.jpg", ImageOrder: 0},
			{URL: "https://cdn.makaohomes.co.ke/b.jpg", ImageOrder: 1},
		},
	}
	p.ID = uuid.New()

	got := NormalizeProperty(p)
	assert.Equal(t, "https://cdn.makaohomes.co.ke/a.jpg", got.Image)
	assert.Len(t, got.Images, 2)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "about-us", Slugify("About Us"))
	assert.Equal(t, "karen-4-bed-villa", Slugify("Karen 4-Bed Villa!"))
	assert.Equal(t, "home", Slugify("  Home  "))
}
