// internal/models/engagement.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a moderated 1-5 rating by a user on a property.
type Review struct {
	BaseModel
	UserID     uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID    `json:"property_id" gorm:"type:uuid;not null;index"`
	Rating     int          `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string       `json:"comment" gorm:"type:text"`
	Status     ReviewStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// Inquiry is a free-text lead. Its user/property references are audit
// style: they survive as NULL when the referenced row is deleted.
type Inquiry struct {
	BaseModel
	UserID     *uuid.UUID    `json:"user_id" gorm:"type:uuid;index"`
	PropertyID *uuid.UUID    `json:"property_id" gorm:"type:uuid;index"`
	Name       string        `json:"name" gorm:"size:100;not null"`
	Email      string        `json:"email" gorm:"size:255;not null"`
	Phone      string        `json:"phone" gorm:"size:30"`
	Message    string        `json:"message" gorm:"type:text;not null"`
	Status     InquiryStatus `json:"status" gorm:"type:varchar(20);default:'new';index"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL"`
}

// Appointment is a scheduled meeting between a user and an agent about a
// property.
type Appointment struct {
	BaseModel
	UserID     uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID         `json:"property_id" gorm:"type:uuid;not null;index"`
	AgentID    *uuid.UUID        `json:"agent_id" gorm:"type:uuid;index"`
	Date       time.Time         `json:"date" gorm:"type:date;not null"`
	TimeSlot   string            `json:"time" gorm:"column:time_slot;size:20;not null"`
	Notes      string            `json:"notes" gorm:"type:text"`
	Status     AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Agent    *User     `json:"agent,omitempty" gorm:"foreignKey:AgentID;constraint:OnDelete:SET NULL"`
}

// Viewing is a property visit request. It shares the appointment status
// workflow but is tracked separately by the back office.
type Viewing struct {
	BaseModel
	UserID     uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID         `json:"property_id" gorm:"type:uuid;not null;index"`
	AgentID    *uuid.UUID        `json:"agent_id" gorm:"type:uuid;index"`
	Date       time.Time         `json:"date" gorm:"type:date;not null"`
	TimeSlot   string            `json:"time" gorm:"column:time_slot;size:20;not null"`
	Notes      string            `json:"notes" gorm:"type:text"`
	Status     AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Agent    *User     `json:"agent,omitempty" gorm:"foreignKey:AgentID;constraint:OnDelete:SET NULL"`
}
