package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	domainRepo "github.com/prospecta/prospecta-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new referral provider repository
func NewProviderRepository(db *gorm.DB) domainRepo.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	var provider entity.Provider
	err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) GetByName(ctx context.Context, name string) (*entity.Provider, error) {
	var provider entity.Provider
	err := r.db.WithContext(ctx).First(&provider, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *providerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Provider{}, "id = ?", id).Error
}

func (r *providerRepository) List(ctx context.Context) ([]entity.Provider, error) {
	var providers []entity.Provider
	err := r.db.WithContext(ctx).Order("name ASC").Find(&providers).Error
	return providers, err
}
