package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
)

// ProductService handles the catalog of products a lead can be interested in
type ProductService struct {
	productRepo repository.ProductRepository
	leadRepo    repository.LeadRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, leadRepo repository.LeadRepository) *ProductService {
	return &ProductService{productRepo: productRepo, leadRepo: leadRepo}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Name        string
	Description *string
}

// CreateProduct creates a product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	existing, err := s.productRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product name already exists")
	}

	product := &entity.Product{Name: input.Name, Description: input.Description}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != "" && input.Name != product.Name {
		existing, err := s.productRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product name already exists")
		}
		product.Name = input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product. The delete is refused while any lead
// lists it as a product of interest.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	count, err := s.leadRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrityError("Product is still referenced by leads")
	}

	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns the full product catalog
func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// ProviderService handles the catalog of referral providers
type ProviderService struct {
	providerRepo repository.ProviderRepository
	leadRepo     repository.LeadRepository
}

// NewProviderService creates a new provider service
func NewProviderService(providerRepo repository.ProviderRepository, leadRepo repository.LeadRepository) *ProviderService {
	return &ProviderService{providerRepo: providerRepo, leadRepo: leadRepo}
}

// ProviderInput represents the create/update provider input
type ProviderInput struct {
	Name        string
	ContactName *string
	Email       *string
	Phone       *string
}

// CreateProvider creates a referral provider
func (s *ProviderService) CreateProvider(ctx context.Context, input *ProviderInput) (*entity.Provider, error) {
	existing, err := s.providerRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Provider name already exists")
	}

	provider := &entity.Provider{
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
	}
	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// UpdateProvider updates a referral provider
func (s *ProviderService) UpdateProvider(ctx context.Context, id uuid.UUID, input *ProviderInput) (*entity.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("Provider")
	}

	if input.Name != "" && input.Name != provider.Name {
		existing, err := s.providerRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != provider.ID {
			return nil, apperror.NewConflictError("Provider name already exists")
		}
		provider.Name = input.Name
	}
	if input.ContactName != nil {
		provider.ContactName = input.ContactName
	}
	if input.Email != nil {
		provider.Email = input.Email
	}
	if input.Phone != nil {
		provider.Phone = input.Phone
	}

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// DeleteProvider deletes a referral provider. The delete is refused while
// any lead references it.
func (s *ProviderService) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if provider == nil {
		return apperror.NewNotFoundError("Provider")
	}

	count, err := s.leadRepo.CountByProvider(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrityError("Provider is still referenced by leads")
	}

	return s.providerRepo.Delete(ctx, id)
}

// ListProviders returns the full provider catalog
func (s *ProviderService) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return s.providerRepo.List(ctx)
}
