package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	domainRepo "github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/pagination"
	"gorm.io/gorm"
)

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) domainRepo.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lead, err
}

func (r *leadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string, skipOwnerFilter bool) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lead{})
	if !skipOwnerFilter {
		query = query.Where("owner_id = ?", ownerID)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR company ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("last_update DESC").
		Find(&leads).Error

	return leads, total, err
}

func (r *leadRepository) ListAll(ctx context.Context) ([]entity.Lead, error) {
	var leads []entity.Lead
	err := r.db.WithContext(ctx).Order("last_update DESC").Find(&leads).Error
	return leads, err
}

func (r *leadRepository) ListByStageType(ctx context.Context, stageType string) ([]entity.Lead, error) {
	var leads []entity.Lead
	err := r.db.WithContext(ctx).
		Joins("JOIN stages ON stages.id = leads.status_id").
		Where("stages.type = ?", stageType).
		Order("leads.name ASC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepository) CountByStage(ctx context.Context, stageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Where("status_id = ?", stageID).
		Count(&count).Error
	return count, err
}

func (r *leadRepository) CountByTag(ctx context.Context, tagID uuid.UUID) (int64, error) {
	return r.countJSONBContains(ctx, "tag_ids", tagID)
}

func (r *leadRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	return r.countJSONBContains(ctx, "product_ids", productID)
}

func (r *leadRepository) CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error
	return count, err
}

func (r *leadRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// countJSONBContains counts leads whose JSONB id-set column contains the id
func (r *leadRepository) countJSONBContains(ctx context.Context, column string, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Where(column+" @> ?", fmt.Sprintf(`["%s"]`, id)).
		Count(&count).Error
	return count, err
}
