package request

import "github.com/google/uuid"

// SaveLeadRequest is the lead create/update payload: the full form snapshot
type SaveLeadRequest struct {
	Name            string      `json:"name" binding:"required"`
	Company         string      `json:"company"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Status          uuid.UUID   `json:"status" binding:"required"`
	TagID           *uuid.UUID  `json:"tag_id"`
	ProductIDs      []uuid.UUID `json:"product_ids"`
	ProviderID      *uuid.UUID  `json:"provider_id"`
	OwnerID         uuid.UUID   `json:"owner_id" binding:"required"`
	AssignedOffice  *string     `json:"assigned_office"`
	AffiliateNumber *string     `json:"affiliate_number"`
	NewObservation  string      `json:"new_observation"`
}

// MoveLeadRequest is the board drag-and-drop payload
type MoveLeadRequest struct {
	Status uuid.UUID `json:"status" binding:"required"`
}

// SaveBillingRequest is the billing modal payload for a won client
type SaveBillingRequest struct {
	ClientStatus string `json:"client_status" binding:"required"`
	Month        string `json:"month" binding:"required"`
	Billed       bool   `json:"billed"`
}
