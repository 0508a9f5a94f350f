package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
)

// ProductRepository defines the interface for product reference data
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Product, error)
}

// ProviderRepository defines the interface for referral provider data
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	GetByName(ctx context.Context, name string) (*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Provider, error)
}
