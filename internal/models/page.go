// internal/models/page.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is a CMS document keyed by slug. Only published pages are served
// on the public read path.
type Page struct {
	BaseModel
	Title           string     `json:"title" gorm:"size:255;not null"`
	Slug            string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Content         string     `json:"content" gorm:"type:text"`
	HeroTitle       string     `json:"hero_title" gorm:"size:255"`
	HeroSubtitle    string     `json:"hero_subtitle" gorm:"size:255"`
	HeroDescription string     `json:"hero_description" gorm:"type:text"`
	HeroImageURL    string     `json:"hero_image_url" gorm:"type:text"`
	Status          PageStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SEOTitle        string     `json:"seo_title" gorm:"column:seo_title;size:255"`
	SEODescription  string     `json:"seo_description" gorm:"column:seo_description;type:text"`
	SEOKeywords     string     `json:"seo_keywords" gorm:"column:seo_keywords;size:500"`

	// Relationships
	ContentImages []ContentImage `json:"content_images,omitempty" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

// ContentImage is owned by a page and keyed by a section name so a page
// can carry several independent image groups (hero, banner, gallery).
type ContentImage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PageID      uuid.UUID `json:"page_id" gorm:"type:uuid;not null;index"`
	SectionName string    `json:"section_name" gorm:"size:100;not null;index"`
	URL         string    `json:"url" gorm:"type:text;not null"`
	AltText     string    `json:"alt_text" gorm:"size:255"`
	ImageOrder  int       `json:"image_order" gorm:"default:0"`
	ImageType   ImageType `json:"image_type" gorm:"type:varchar(20);default:'gallery'"`
	CreatedAt   time.Time `json:"created_at"`
}
