package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
)

// StageService handles pipeline stage configuration
type StageService struct {
	stageRepo repository.StageRepository
	tagRepo   repository.TagRepository
	leadRepo  repository.LeadRepository
}

// NewStageService creates a new stage service
func NewStageService(
	stageRepo repository.StageRepository,
	tagRepo repository.TagRepository,
	leadRepo repository.LeadRepository,
) *StageService {
	return &StageService{
		stageRepo: stageRepo,
		tagRepo:   tagRepo,
		leadRepo:  leadRepo,
	}
}

// CreateStageInput represents the create stage input
type CreateStageInput struct {
	Name  string
	Type  enum.StageType
	Color string
}

// CreateStage creates a stage at the end of the board
func (s *StageService) CreateStage(ctx context.Context, input *CreateStageInput) (*entity.Stage, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewFieldValidationError("type", "Stage type must be open, won or lost")
	}

	existing, err := s.stageRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Stage name already exists")
	}

	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stage := &entity.Stage{
		Name:     input.Name,
		Position: len(stages) + 1,
		Type:     input.Type,
		Color:    input.Color,
	}

	if err := s.stageRepo.Create(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// UpdateStageInput represents the update stage input
type UpdateStageInput struct {
	Name  string
	Type  enum.StageType
	Color string
}

// UpdateStage updates a stage's name, type and color
func (s *StageService) UpdateStage(ctx context.Context, id uuid.UUID, input *UpdateStageInput) (*entity.Stage, error) {
	stage, err := s.stageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperror.NewNotFoundError("Stage")
	}

	if input.Name != "" && input.Name != stage.Name {
		existing, err := s.stageRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != stage.ID {
			return nil, apperror.NewConflictError("Stage name already exists")
		}
		stage.Name = input.Name
	}
	if input.Type != "" {
		if !input.Type.IsValid() {
			return nil, apperror.NewFieldValidationError("type", "Stage type must be open, won or lost")
		}
		stage.Type = input.Type
	}
	if input.Color != "" {
		stage.Color = input.Color
	}

	if err := s.stageRepo.Update(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// DeleteStage deletes a stage. The delete is refused while any lead sits in
// the stage or any tag belongs to it.
func (s *StageService) DeleteStage(ctx context.Context, id uuid.UUID) error {
	stage, err := s.stageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stage == nil {
		return apperror.NewNotFoundError("Stage")
	}

	leadCount, err := s.leadRepo.CountByStage(ctx, id)
	if err != nil {
		return err
	}
	if leadCount > 0 {
		return apperror.NewReferentialIntegrityError("Stage is still referenced by leads")
	}

	tagCount, err := s.tagRepo.CountByStage(ctx, id)
	if err != nil {
		return err
	}
	if tagCount > 0 {
		return apperror.NewReferentialIntegrityError("Stage still has tags")
	}

	return s.stageRepo.Delete(ctx, id)
}

// GetStage retrieves a stage by ID
func (s *StageService) GetStage(ctx context.Context, id uuid.UUID) (*entity.Stage, error) {
	stage, err := s.stageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperror.NewNotFoundError("Stage")
	}
	return stage, nil
}

// ListStages returns all stages in board order
func (s *StageService) ListStages(ctx context.Context) ([]entity.Stage, error) {
	return s.stageRepo.List(ctx)
}

// ReorderStages persists a full board reordering. Every existing stage must
// appear exactly once.
func (s *StageService) ReorderStages(ctx context.Context, orderedIDs []uuid.UUID) ([]entity.Stage, error) {
	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(orderedIDs) != len(stages) {
		return nil, apperror.NewFieldValidationError("stages", "Reorder must include every stage exactly once")
	}
	known := make(map[uuid.UUID]bool, len(stages))
	for _, stage := range stages {
		known[stage.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return nil, apperror.NewFieldValidationError("stages", "Reorder must include every stage exactly once")
		}
		seen[id] = true
	}

	if err := s.stageRepo.Reorder(ctx, orderedIDs); err != nil {
		return nil, err
	}
	return s.stageRepo.List(ctx)
}
