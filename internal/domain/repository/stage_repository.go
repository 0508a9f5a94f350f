package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
)

// StageRepository defines the interface for pipeline stage operations
type StageRepository interface {
	Create(ctx context.Context, stage *entity.Stage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Stage, error)
	GetByName(ctx context.Context, name string) (*entity.Stage, error)
	Update(ctx context.Context, stage *entity.Stage) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all stages ordered by board position
	List(ctx context.Context) ([]entity.Stage, error)
	// Reorder persists the given board positions in one transaction
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}

// TagRepository defines the interface for sub-stage tag operations
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Tag, error)
	ListByStage(ctx context.Context, stageID uuid.UUID) ([]entity.Tag, error)
	CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error)
}
