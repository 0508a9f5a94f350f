package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/pkg/pagination"
)

// LeadRepository defines the interface for lead data operations. Leads are
// never deleted; saves are full replacements of the computed next record.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	// Save replaces the whole record. Last write wins; the version column is
	// advisory and not enforced here.
	Save(ctx context.Context, lead *entity.Lead) error
	// List returns leads with pagination. If skipOwnerFilter is true (for
	// managers), all leads are returned.
	List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string, skipOwnerFilter bool) ([]entity.Lead, int64, error)
	// ListAll returns the full collection snapshot used by the derived views
	ListAll(ctx context.Context) ([]entity.Lead, error)
	// ListByStageType returns leads whose stage has the given type
	ListByStageType(ctx context.Context, stageType string) ([]entity.Lead, error)

	// Reference counts backing the referential-integrity delete guards.
	CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error)
	CountByTag(ctx context.Context, tagID uuid.UUID) (int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
