package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider is a referral source. Leads optionally reference one by id.
type Provider struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ContactName *string   `gorm:"size:255" json:"contact_name,omitempty"`
	Email       *string   `gorm:"size:255" json:"email,omitempty"`
	Phone       *string   `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new provider
func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Provider model
func (Provider) TableName() string {
	return "providers"
}
