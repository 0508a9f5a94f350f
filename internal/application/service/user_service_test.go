package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserRefusedWhileOwningLeads(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo, f.leadRepo)

	_, err := f.leadService().CreateLead(context.Background(), &SaveLeadInput{
		Name:     "Ana García",
		StatusID: f.openStage.ID,
		OwnerID:  f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)

	err = svc.DeleteUser(context.Background(), f.seller.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	require.NoError(t, svc.DeleteUser(context.Background(), f.admin.ID))
}

func TestCreateUserValidatesRole(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo, f.leadRepo)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name:     "Nuevo Usuario",
		Email:    "nuevo@prospecta.test",
		Password: "secreto123",
		Role:     enum.Role("Gerente"),
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name:     "Nuevo Usuario",
		Email:    "nuevo@prospecta.test",
		Password: "secreto123",
		Role:     enum.RoleSupervisor,
	})
	require.NoError(t, err)
	assert.True(t, user.IsManager())
	assert.NotEqual(t, "secreto123", user.Password)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo, f.leadRepo)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name:     "Duplicada",
		Email:    f.seller.Email,
		Password: "secreto123",
		Role:     enum.RoleVendedor,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}
