package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) stageService(tagRepo *fakeTagRepo) *StageService {
	return NewStageService(f.stageRepo, tagRepo, f.leadRepo)
}

func TestDeleteStageRefusedWhileLeadsReference(t *testing.T) {
	f := newFixture(t)
	svc := f.stageService(&fakeTagRepo{})

	_, err := f.leadService().CreateLead(context.Background(), &SaveLeadInput{
		Name:     "Ana García",
		StatusID: f.openStage.ID,
		OwnerID:  f.seller.ID,
	}, &f.seller)
	require.NoError(t, err)

	err = svc.DeleteStage(context.Background(), f.openStage.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestDeleteStageRefusedWhileTagsAttached(t *testing.T) {
	f := newFixture(t)
	tagRepo := &fakeTagRepo{}
	svc := f.stageService(tagRepo)

	require.NoError(t, tagRepo.Create(context.Background(), &entity.Tag{
		Name:    "Llamar de nuevo",
		StageID: f.openStage.ID,
	}))

	err := svc.DeleteStage(context.Background(), f.openStage.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestDeleteUnreferencedStage(t *testing.T) {
	f := newFixture(t)
	svc := f.stageService(&fakeTagRepo{})

	require.NoError(t, svc.DeleteStage(context.Background(), f.wonStage.ID))

	stages, err := svc.ListStages(context.Background())
	require.NoError(t, err)
	assert.Len(t, stages, 1)
}

func TestCreateStageAppendsToBoard(t *testing.T) {
	f := newFixture(t)
	svc := f.stageService(&fakeTagRepo{})

	stage, err := svc.CreateStage(context.Background(), &CreateStageInput{
		Name:  "En Negociación",
		Type:  enum.StageTypeOpen,
		Color: "#f97316",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stage.Position)

	_, err = svc.CreateStage(context.Background(), &CreateStageInput{
		Name: "En Negociación",
		Type: enum.StageTypeOpen,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestReorderStagesValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.stageService(&fakeTagRepo{})

	// Partial reorder rejected
	_, err := svc.ReorderStages(context.Background(), []uuid.UUID{f.openStage.ID})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	// Duplicates rejected
	_, err = svc.ReorderStages(context.Background(), []uuid.UUID{f.openStage.ID, f.openStage.ID})
	require.Error(t, err)

	// Unknown id rejected
	_, err = svc.ReorderStages(context.Background(), []uuid.UUID{f.openStage.ID, uuid.New()})
	require.Error(t, err)
}

func TestReorderStages(t *testing.T) {
	f := newFixture(t)
	svc := f.stageService(&fakeTagRepo{})

	stages, err := svc.ReorderStages(context.Background(), []uuid.UUID{f.wonStage.ID, f.openStage.ID})
	require.NoError(t, err)

	require.Len(t, stages, 2)
	assert.Equal(t, f.wonStage.ID, stages[0].ID)
	assert.Equal(t, 1, stages[0].Position)
	assert.Equal(t, 2, stages[1].Position)
}
