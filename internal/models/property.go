// internal/models/property.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Property is the stored row. The promoted columns and the Details bag
// historically duplicate each other; the canonical read shape is produced
// by the normalizer, never by reading this struct directly.
type Property struct {
	BaseModel
	Title         string         `json:"title" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         int64          `json:"price" gorm:"not null;default:0;index"`
	Location      string         `json:"location" gorm:"size:255;index"`
	Bedrooms      int            `json:"bedrooms" gorm:"default:0"`
	Bathrooms     int            `json:"bathrooms" gorm:"default:0"`
	Sqft          float64        `json:"sqft" gorm:"default:0"`
	LandSize      string         `json:"land_size" gorm:"size:100"`
	YearBuilt     int            `json:"year_built" gorm:"default:0"`
	Furnishing    string         `json:"furnishing" gorm:"size:50"`
	PropertyStat  string         `json:"property_status" gorm:"column:property_status;size:50"`
	PropertyAge   string         `json:"property_age" gorm:"size:50"`
	Floor         int            `json:"floor" gorm:"default:0"`
	TotalFloors   int            `json:"total_floors" gorm:"default:0"`
	Facing        string         `json:"facing" gorm:"size:50"`
	ParkingSpaces int            `json:"parking_spaces" gorm:"default:0"`
	PropertyType  string         `json:"property_type" gorm:"size:50;index"`
	Status        PropertyStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Details       JSONB          `json:"details" gorm:"type:jsonb"`
	Featured      bool           `json:"featured" gorm:"default:false;index"`
	Amenities     pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Features      pq.StringArray `json:"features" gorm:"type:text[]"`
	Landmarks     pq.StringArray `json:"nearby_landmarks" gorm:"column:nearby_landmarks;type:text[]"`

	// Relationships
	Images       []Image           `json:"images,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	ExtraFeature []PropertyFeature `json:"extra_features,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// Image is an ordered attachment owned by exactly one property. Order
// values are caller-assigned; gaps are permitted and never renumbered.
type Image struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	URL        string    `json:"url" gorm:"type:text;not null"`
	AltText    string    `json:"alt_text" gorm:"size:255"`
	ImageOrder int       `json:"image_order" gorm:"default:0"`
	ImageType  ImageType `json:"image_type" gorm:"type:varchar(20);default:'property'"`
	CreatedAt  time.Time `json:"created_at"`
}

// PropertyFeature holds structured admin-entered feature rows that do not
// fit the flat text[] columns (e.g. "Balconies: 2").
type PropertyFeature struct {
	BaseModel
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Values     JSONB     `json:"values" gorm:"type:jsonb"`
	FeatOrder  int       `json:"order" gorm:"column:feature_order;default:0"`
}
