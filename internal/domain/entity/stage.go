package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Stage is a named pipeline column. Position defines the column ordering on
// the board and is mutable via reordering.
type Stage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Position  int            `gorm:"not null" json:"order"`
	Type      enum.StageType `gorm:"size:10;not null;default:'open'" json:"type"`
	Color     string         `gorm:"size:20" json:"color"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new stage
func (s *Stage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Stage model
func (Stage) TableName() string {
	return "stages"
}
