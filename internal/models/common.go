// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields. The schema uses hard deletes with FK
// cascade semantics, so there is deliberately no soft-delete column.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleAgent      UserRole = "agent"
	UserRoleRegistered UserRole = "registered"
)

// CanonicalRole maps the role spellings that accumulated across the old
// admin screens ("client", "user", "member", ...) onto the closed set
// above. Every write path goes through this.
func CanonicalRole(raw string) UserRole {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch UserRole(raw) {
	case UserRoleAdmin, UserRoleAgent, UserRoleRegistered:
		return UserRole(raw)
	}
	switch raw {
	case "client", "user", "member", "public", "customer":
		return UserRoleRegistered
	case "realtor", "broker":
		return UserRoleAgent
	case "super_admin", "superadmin":
		return UserRoleAdmin
	}
	return UserRoleRegistered
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusLeased    PropertyStatus = "leased"
)

// Property types are an open set by convention; these are the values the
// public filters and the admin forms use.
const (
	PropertyTypeHouse      = "house"
	PropertyTypeApartment  = "apartment"
	PropertyTypeVilla      = "villa"
	PropertyTypeTownhouse  = "townhouse"
	PropertyTypeLand       = "land"
	PropertyTypeCommercial = "commercial"
)

type ImageType string

const (
	ImageTypeProperty  ImageType = "property"
	ImageTypeFloorPlan ImageType = "floor_plan"
	ImageTypeGallery   ImageType = "gallery"
	ImageTypeAvatar    ImageType = "avatar"
	ImageTypeLogo      ImageType = "logo"
	ImageTypeMarketing ImageType = "marketing"
	ImageTypeHero      ImageType = "hero"
	ImageTypeBanner    ImageType = "banner"
)

type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusClosed     InquiryStatus = "closed"
	InquiryStatusConverted  InquiryStatus = "converted"
	InquiryStatusSpam       InquiryStatus = "spam"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)
