package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Lead is the central entity: a prospect tracked through the pipeline.
// Leads are never physically deleted; terminal state is reaching a won or
// lost stage.
type Lead struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Company string    `gorm:"size:255" json:"company"`
	Email   string    `gorm:"size:255" json:"email"`
	Phone   string    `gorm:"size:50" json:"phone"`

	// Observations is append-only free text; new entries are added as
	// timestamped blocks on save, never edited in place.
	Observations    string  `gorm:"type:text" json:"observations"`
	AffiliateNumber *string `gorm:"size:100" json:"affiliate_number,omitempty"`
	AssignedOffice  *string `gorm:"size:255" json:"assigned_office,omitempty"`

	StatusID   uuid.UUID  `gorm:"type:uuid;not null;index;column:status_id" json:"status"`
	TagIDs     UUIDSlice  `gorm:"type:jsonb" json:"tag_ids"`
	ProductIDs UUIDSlice  `gorm:"type:jsonb" json:"product_ids"`
	ProviderID *uuid.UUID `gorm:"type:uuid;index" json:"provider_id,omitempty"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`

	StatusHistory StatusHistory `gorm:"type:jsonb" json:"status_history"`
	TagHistory    TagHistory    `gorm:"type:jsonb" json:"tag_history"`

	NotificationForSeller       bool       `gorm:"default:false" json:"notification_for_seller"`
	SellerHasViewedNotification bool       `gorm:"default:false" json:"seller_has_viewed_notification"`
	NotificationForManagerID    *uuid.UUID `gorm:"type:uuid" json:"notification_for_manager_id,omitempty"`

	ClientStatus   *enum.ClientStatus `gorm:"size:20" json:"client_status,omitempty"`
	BillingHistory BillingHistory     `gorm:"type:jsonb" json:"billing_history"`

	CreatedAt  time.Time `json:"created_at"`
	LastUpdate time.Time `gorm:"column:last_update" json:"last_update"`
	Version    int       `gorm:"not null;default:0" json:"_version"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}

// CurrentTagID returns the active tag, if any. The model stores a set for
// forward compatibility but only index 0 is ever active.
func (l *Lead) CurrentTagID() *uuid.UUID {
	if len(l.TagIDs) == 0 {
		return nil
	}
	id := l.TagIDs[0]
	return &id
}
