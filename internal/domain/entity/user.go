package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a user of the pipeline: an admin, a supervisor, or a
// seller (vendedor) owning leads.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;unique;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Role       enum.Role      `gorm:"size:20;not null;default:'Vendedor'" json:"role"`
	Provider   string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string        `gorm:"size:255" json:"-"`
	Photo      *string        `gorm:"size:255" json:"photo,omitempty"`
	LastLogin  *time.Time     `json:"last_login,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user has cross-seller visibility
func (u *User) IsManager() bool {
	return u.Role.IsManager()
}
