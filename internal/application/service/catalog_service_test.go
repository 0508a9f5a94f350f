package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteProviderRefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	providerRepo := &fakeProviderRepo{}
	svc := NewProviderService(providerRepo, f.leadRepo)

	provider, err := svc.CreateProvider(context.Background(), &ProviderInput{Name: "Clínica Norte"})
	require.NoError(t, err)

	_, err = f.leadService().CreateLead(context.Background(), &SaveLeadInput{
		Name:       "Ana García",
		StatusID:   f.openStage.ID,
		OwnerID:    f.seller.ID,
		ProviderID: &provider.ID,
	}, &f.seller)
	require.NoError(t, err)

	err = svc.DeleteProvider(context.Background(), provider.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	// Still in the catalog
	providers, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	assert.Len(t, providers, 1)
}

func TestDeleteUnreferencedProvider(t *testing.T) {
	f := newFixture(t)
	providerRepo := &fakeProviderRepo{}
	svc := NewProviderService(providerRepo, f.leadRepo)

	provider, err := svc.CreateProvider(context.Background(), &ProviderInput{Name: "Clínica Norte"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProvider(context.Background(), provider.ID))

	providers, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestDeleteProductRefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	productRepo := &fakeProductRepo{}
	svc := NewProductService(productRepo, f.leadRepo)

	product, err := svc.CreateProduct(context.Background(), &ProductInput{Name: "Plan Salud"})
	require.NoError(t, err)

	_, err = f.leadService().CreateLead(context.Background(), &SaveLeadInput{
		Name:       "Ana García",
		StatusID:   f.openStage.ID,
		OwnerID:    f.seller.ID,
		ProductIDs: []uuid.UUID{product.ID},
	}, &f.seller)
	require.NoError(t, err)

	err = svc.DeleteProduct(context.Background(), product.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestDuplicateProductName(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(&fakeProductRepo{}, f.leadRepo)

	_, err := svc.CreateProduct(context.Background(), &ProductInput{Name: "Plan Salud"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), &ProductInput{Name: "Plan Salud"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}
