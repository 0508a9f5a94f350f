package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a sub-stage classification scoped to one stage. A tag is only
// offered while the lead's current status equals the tag's stage.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	StageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"stage_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tag
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}
