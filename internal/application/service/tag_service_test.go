package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagRequiresExistingStage(t *testing.T) {
	f := newFixture(t)
	tagRepo := &fakeTagRepo{}
	svc := NewTagService(tagRepo, f.stageRepo, f.leadRepo)

	_, err := svc.CreateTag(context.Background(), &CreateTagInput{
		Name:    "Llamar de nuevo",
		Color:   "#eab308",
		StageID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	tag, err := svc.CreateTag(context.Background(), &CreateTagInput{
		Name:    "Llamar de nuevo",
		Color:   "#eab308",
		StageID: f.openStage.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.openStage.ID, tag.StageID)
}

func TestDeleteTagRefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	tagRepo := &fakeTagRepo{}
	svc := NewTagService(tagRepo, f.stageRepo, f.leadRepo)

	tag := entity.Tag{ID: uuid.New(), Name: "Interesado", StageID: f.openStage.ID}
	require.NoError(t, tagRepo.Create(context.Background(), &tag))

	lead := entity.Lead{
		ID:       uuid.New(),
		Name:     "Carlos Ruiz",
		StatusID: f.openStage.ID,
		OwnerID:  f.seller.ID,
		TagIDs:   entity.UUIDSlice{tag.ID},
	}
	require.NoError(t, f.leadRepo.Create(context.Background(), &lead))

	err := svc.DeleteTag(context.Background(), tag.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	lead.TagIDs = nil
	require.NoError(t, f.leadRepo.Save(context.Background(), &lead))
	require.NoError(t, svc.DeleteTag(context.Background(), tag.ID))
}

func TestListTagsFiltersByStage(t *testing.T) {
	f := newFixture(t)
	tagRepo := &fakeTagRepo{}
	svc := NewTagService(tagRepo, f.stageRepo, f.leadRepo)

	open := entity.Tag{ID: uuid.New(), Name: "Interesado", StageID: f.openStage.ID}
	won := entity.Tag{ID: uuid.New(), Name: "Contrato firmado", StageID: f.wonStage.ID}
	require.NoError(t, tagRepo.Create(context.Background(), &open))
	require.NoError(t, tagRepo.Create(context.Background(), &won))

	all, err := svc.ListTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListTags(context.Background(), &f.openStage.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Interesado", scoped[0].Name)
}

func TestUpdateTagMovesBetweenStages(t *testing.T) {
	f := newFixture(t)
	tagRepo := &fakeTagRepo{}
	svc := NewTagService(tagRepo, f.stageRepo, f.leadRepo)

	tag := entity.Tag{ID: uuid.New(), Name: "Interesado", StageID: f.openStage.ID}
	require.NoError(t, tagRepo.Create(context.Background(), &tag))

	unknown := uuid.New()
	_, err := svc.UpdateTag(context.Background(), tag.ID, &UpdateTagInput{StageID: &unknown})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	updated, err := svc.UpdateTag(context.Background(), tag.ID, &UpdateTagInput{
		Name:    "Muy interesado",
		StageID: &f.wonStage.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Muy interesado", updated.Name)
	assert.Equal(t, f.wonStage.ID, updated.StageID)
}
