package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	domainRepo "github.com/prospecta/prospecta-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stageRepository struct {
	db *gorm.DB
}

// NewStageRepository creates a new stage repository
func NewStageRepository(db *gorm.DB) domainRepo.StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) Create(ctx context.Context, stage *entity.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Stage, error) {
	var stage entity.Stage
	err := r.db.WithContext(ctx).First(&stage, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stage, err
}

func (r *stageRepository) GetByName(ctx context.Context, name string) (*entity.Stage, error) {
	var stage entity.Stage
	err := r.db.WithContext(ctx).First(&stage, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stage, err
}

func (r *stageRepository) Update(ctx context.Context, stage *entity.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *stageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Stage{}, "id = ?", id).Error
}

func (r *stageRepository) List(ctx context.Context) ([]entity.Stage, error) {
	var stages []entity.Stage
	err := r.db.WithContext(ctx).Order("position ASC").Find(&stages).Error
	return stages, err
}

func (r *stageRepository) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&entity.Stage{}).
				Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) domainRepo.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tag, err
}

func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Tag{}, "id = ?", id).Error
}

func (r *tagRepository) List(ctx context.Context) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) ListByStage(ctx context.Context, stageID uuid.UUID) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Tag{}).
		Where("stage_id = ?", stageID).
		Count(&count).Error
	return count, err
}
