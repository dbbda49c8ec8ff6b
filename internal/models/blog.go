// internal/models/blog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BlogPost struct {
	BaseModel
	AuthorID    uuid.UUID      `json:"author_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Excerpt     string         `json:"excerpt" gorm:"type:text"`
	Content     string         `json:"content" gorm:"type:text"`
	CoverURL    string         `json:"cover_url" gorm:"type:text"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Status      BlogStatus     `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	PublishedAt *time.Time     `json:"published_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
