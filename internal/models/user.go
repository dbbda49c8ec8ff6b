// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'registered';index"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Phone        string     `json:"phone" gorm:"size:30"`
	AvatarURL    string     `json:"avatar_url" gorm:"type:text"`
	LastLoginAt  *time.Time `json:"last_login_at" gorm:"column:last_login"`

	// Password reset state. Only the sha256 of the token is stored.
	ResetTokenHash      string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	// Relationships
	Favorites []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BlogPosts []BlogPost `json:"blog_posts,omitempty" gorm:"foreignKey:AuthorID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Favorite is a unique user↔property pair.
type Favorite struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// SavedSearch stores a registered user's filter set for re-running.
type SavedSearch struct {
	BaseModel
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name    string    `json:"name" gorm:"size:100;not null"`
	Filters JSONB     `json:"filters" gorm:"type:jsonb"`
}

// PropertyAlert notifies a user when matching listings appear.
type PropertyAlert struct {
	BaseModel
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Criteria  JSONB      `json:"criteria" gorm:"type:jsonb"`
	Frequency string     `json:"frequency" gorm:"size:20;default:'daily'"`
	Active    bool       `json:"active" gorm:"default:true"`
	LastSent  *time.Time `json:"last_sent"`
}

// ActivityLog records admin mutations for the back-office audit trail.
// References are audit-style: SET NULL when the user is deleted.
type ActivityLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index;constraint:OnDelete:SET NULL"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
