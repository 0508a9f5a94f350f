package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
)

// TagService handles sub-stage tag configuration
type TagService struct {
	tagRepo   repository.TagRepository
	stageRepo repository.StageRepository
	leadRepo  repository.LeadRepository
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo repository.TagRepository,
	stageRepo repository.StageRepository,
	leadRepo repository.LeadRepository,
) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		stageRepo: stageRepo,
		leadRepo:  leadRepo,
	}
}

// CreateTagInput represents the create tag input
type CreateTagInput struct {
	Name    string
	Color   string
	StageID uuid.UUID
}

// CreateTag creates a tag inside a stage
func (s *TagService) CreateTag(ctx context.Context, input *CreateTagInput) (*entity.Tag, error) {
	stage, err := s.stageRepo.GetByID(ctx, input.StageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperror.NewFieldValidationError("stage_id", "Stage does not exist")
	}

	tag := &entity.Tag{
		Name:    input.Name,
		Color:   input.Color,
		StageID: input.StageID,
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTagInput represents the update tag input
type UpdateTagInput struct {
	Name    string
	Color   string
	StageID *uuid.UUID
}

// UpdateTag updates a tag
func (s *TagService) UpdateTag(ctx context.Context, id uuid.UUID, input *UpdateTagInput) (*entity.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NewNotFoundError("Tag")
	}

	if input.Name != "" {
		tag.Name = input.Name
	}
	if input.Color != "" {
		tag.Color = input.Color
	}
	if input.StageID != nil {
		stage, err := s.stageRepo.GetByID(ctx, *input.StageID)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			return nil, apperror.NewFieldValidationError("stage_id", "Stage does not exist")
		}
		tag.StageID = *input.StageID
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag deletes a tag. The delete is refused while any lead carries it.
func (s *TagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return apperror.NewNotFoundError("Tag")
	}

	count, err := s.leadRepo.CountByTag(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrityError("Tag is still referenced by leads")
	}

	return s.tagRepo.Delete(ctx, id)
}

// ListTags returns all tags, optionally filtered by stage
func (s *TagService) ListTags(ctx context.Context, stageID *uuid.UUID) ([]entity.Tag, error) {
	if stageID != nil {
		return s.tagRepo.ListByStage(ctx, *stageID)
	}
	return s.tagRepo.List(ctx)
}
