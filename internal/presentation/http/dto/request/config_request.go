package request

import "github.com/google/uuid"

// CreateStageRequest is the create stage payload
type CreateStageRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Color string `json:"color"`
}

// UpdateStageRequest is the update stage payload
type UpdateStageRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// ReorderStagesRequest is the board reordering payload
type ReorderStagesRequest struct {
	Stages []uuid.UUID `json:"stages" binding:"required"`
}

// CreateTagRequest is the create tag payload
type CreateTagRequest struct {
	Name    string    `json:"name" binding:"required"`
	Color   string    `json:"color"`
	StageID uuid.UUID `json:"stage_id" binding:"required"`
}

// UpdateTagRequest is the update tag payload
type UpdateTagRequest struct {
	Name    string     `json:"name"`
	Color   string     `json:"color"`
	StageID *uuid.UUID `json:"stage_id"`
}

// ProductRequest is the create/update product payload
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ProviderRequest is the create/update provider payload
type ProviderRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
}
