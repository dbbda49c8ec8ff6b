// internal/services/normalizer.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/makaohomes/makao-backend/internal/models"
)

// The properties table accumulated two generations of naming: promoted
// typed columns, and the same concepts duplicated inside the `details`
// JSONB bag under camelCase or snake_case keys. NormalizeProperty is the
// single adapter that reads both legacy shapes and produces the one
// canonical record the rest of the system sees. Resolution order per
// field: promoted column, then the bag's camelCase key, then its
// snake_case key, then a safe default.

const sqftToSqmFactor = 0.092903

var ErrInvalidPrice = errors.New("price is not a valid amount")

// NormalizedProperty is the canonical read shape. Details carries the
// same resolved values under snake_case keys for consumers that still
// read the bag.
type NormalizedProperty struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Price           string                `json:"price"`
	PriceAmount     int64                 `json:"price_amount"`
	Location        string                `json:"location"`
	Bedrooms        int                   `json:"bedrooms"`
	Bathrooms       int                   `json:"bathrooms"`
	Sqft            float64               `json:"sqft"`
	Sqm             float64               `json:"sqm"`
	LandSize        string                `json:"land_size"`
	YearBuilt       int                   `json:"year_built"`
	Furnishing      string                `json:"furnishing"`
	PropertyStatus  string                `json:"property_status"`
	PropertyAge     string                `json:"property_age"`
	Floor           int                   `json:"floor"`
	TotalFloors     int                   `json:"total_floors"`
	Facing          string                `json:"facing"`
	ParkingSpaces   int                   `json:"parking_spaces"`
	PropertyType    string                `json:"property_type"`
	Status          models.PropertyStatus `json:"status"`
	Featured        bool                  `json:"featured"`
	Amenities       []string              `json:"amenities"`
	Features        []string              `json:"features"`
	NearbyLandmarks []string              `json:"nearby_landmarks"`
	Details         models.JSONB          `json:"details"`
	Image           string                `json:"image"`
	Images          []models.Image        `json:"images"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NormalizeProperty(p *models.Property) *NormalizedProperty {
	if p == nil {
		return nil
	}

	bag := p.Details

	n := &NormalizedProperty{
		ID:              p.ID.String(),
		Title:           p.Title,
		Description:     p.Description,
		PriceAmount:     p.Price,
		Price:           FormatPrice(p.Price),
		Location:        p.Location,
		Bedrooms:        resolveInt(p.Bedrooms, bag, "bedrooms", "beds"),
		Bathrooms:       resolveInt(p.Bathrooms, bag, "bathrooms", "baths"),
		Sqft:            resolveFloat(p.Sqft, bag, "sqft", "square_feet"),
		LandSize:        resolveString(p.LandSize, bag, "landSize", "land_size"),
		YearBuilt:       resolveInt(p.YearBuilt, bag, "yearBuilt", "year_built"),
		Furnishing:      resolveString(p.Furnishing, bag, "furnishing", "furnishing_status"),
		PropertyStatus:  resolveString(p.PropertyStat, bag, "propertyStatus", "property_status"),
		PropertyAge:     resolveString(p.PropertyAge, bag, "propertyAge", "property_age"),
		Floor:           resolveInt(p.Floor, bag, "floor", "floor_number"),
		TotalFloors:     resolveInt(p.TotalFloors, bag, "totalFloors", "total_floors"),
		Facing:          resolveString(p.Facing, bag, "facing", "facing_direction"),
		ParkingSpaces:   resolveInt(p.ParkingSpaces, bag, "parkingSpaces", "parking_spaces"),
		PropertyType:    p.PropertyType,
		Status:          p.Status,
		Featured:        p.Featured,
		Amenities:       unionList(p.Amenities, bag, "amenities"),
		Features:        unionList(p.Features, bag, "features"),
		NearbyLandmarks: unionList(p.Landmarks, bag, "nearByLandmarks", "nearby_landmarks", "nearbyLandmarks"),
		Images:          p.Images,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	n.Sqm = SqftToSqm(n.Sqft)

	if len(p.Images) > 0 {
		n.Image = p.Images[0].URL
	}

	// Rebuild the bag from the resolved values so both read paths agree.
	n.Details = models.JSONB{
		"bedrooms":         n.Bedrooms,
		"bathrooms":        n.Bathrooms,
		"sqft":             n.Sqft,
		"land_size":        n.LandSize,
		"year_built":       n.YearBuilt,
		"furnishing":       n.Furnishing,
		"property_status":  n.PropertyStatus,
		"property_age":     n.PropertyAge,
		"floor":            n.Floor,
		"total_floors":     n.TotalFloors,
		"facing":           n.Facing,
		"parking_spaces":   n.ParkingSpaces,
		"amenities":        n.Amenities,
		"features":         n.Features,
		"nearby_landmarks": n.NearbyLandmarks,
	}

	// Carry through bag keys that were never promoted to columns.
	for k, v := range bag {
		ck := snakeKey(k)
		if _, resolved := n.Details[ck]; !resolved {
			n.Details[ck] = v
		}
	}

	return n
}

// FormatPrice renders a stored integer amount as "KSh 1,234,567".
func FormatPrice(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	out := "KSh " + strings.Join(parts, ",")
	if neg {
		out = "KSh -" + strings.Join(parts, ",")
	}
	return out
}

// ParsePrice coerces the superset of price shapes the admin forms send:
// numbers, numeric strings, and display strings like "KSh 5,000,000".
// A value with no digits at all is rejected, not defaulted to zero.
func ParsePrice(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, ErrInvalidPrice
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		return int64(math.Round(val)), nil
	case string:
		var b strings.Builder
		for _, r := range val {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		if b.Len() == 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, val)
		}
		amount, err := strconv.ParseInt(b.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, val)
		}
		return amount, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidPrice, v)
	}
}

// SqftToSqm derives the metric area, rounded to one decimal. The stored
// unit is never mutated; this exists for presentation only.
func SqftToSqm(sqft float64) float64 {
	return math.Round(sqft*sqftToSqmFactor*10) / 10
}

func resolveString(col string, bag models.JSONB, camel, snake string) string {
	if strings.TrimSpace(col) != "" {
		return col
	}
	if v, ok := bagString(bag, camel); ok {
		return v
	}
	if v, ok := bagString(bag, snake); ok {
		return v
	}
	return ""
}

func resolveInt(col int, bag models.JSONB, camel, snake string) int {
	if col != 0 {
		return col
	}
	if v, ok := bagInt(bag, camel); ok {
		return v
	}
	if v, ok := bagInt(bag, snake); ok {
		return v
	}
	return 0
}

func resolveFloat(col float64, bag models.JSONB, camel, snake string) float64 {
	if col != 0 {
		return col
	}
	if v, ok := bagFloat(bag, camel); ok {
		return v
	}
	if v, ok := bagFloat(bag, snake); ok {
		return v
	}
	return 0
}

func bagString(bag models.JSONB, key string) (string, bool) {
	if bag == nil {
		return "", false
	}
	v, ok := bag[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", false
		}
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	}
	return "", false
}

func bagInt(bag models.JSONB, key string) (int, bool) {
	if bag == nil {
		return 0, false
	}
	v, ok := bag[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func bagFloat(bag models.JSONB, key string) (float64, bool) {
	if bag == nil {
		return 0, false
	}
	v, ok := bag[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// unionList merges the dedicated text[] column with equivalently named
// bag keys, deduplicating case-insensitively. Column values keep their
// position; bag values append in encounter order. Always returns a
// non-nil slice so empty serializes as [].
func unionList(col []string, bag models.JSONB, bagKeys ...string) []string {
	out := make([]string, 0, len(col))
	seen := make(map[string]bool, len(col))

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, s := range col {
		add(s)
	}

	if bag == nil {
		return out
	}

	for _, key := range bagKeys {
		raw, ok := bag[key]
		if !ok {
			continue
		}
		switch vals := raw.(type) {
		case []interface{}:
			for _, v := range vals {
				if s, ok := v.(string); ok {
					add(s)
				}
			}
		case []string:
			for _, s := range vals {
				add(s)
			}
		case string:
			// Some legacy rows stored a comma-joined string.
			for _, s := range strings.Split(vals, ",") {
				add(s)
			}
		}
	}

	return out
}

// snakeKey converts the bag's camelCase spellings to the canonical
// snake_case key, so nearByLandmarks and nearby_landmarks collapse into
// one attribute.
func snakeKey(k string) string {
	var b strings.Builder
	for i, r := range k {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && k[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	// Collapse artifacts like near_by_landmarks vs nearby_landmarks.
	s := b.String()
	if s == "near_by_landmarks" {
		return "nearby_landmarks"
	}
	return s
}
