package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
)

func viewFixtures() (map[uuid.UUID]*entity.Stage, *entity.Stage, *entity.Stage, *entity.Stage) {
	open := &entity.Stage{ID: uuid.New(), Name: "Nuevo Prospecto", Type: enum.StageTypeOpen}
	won := &entity.Stage{ID: uuid.New(), Name: "Cliente", Type: enum.StageTypeWon}
	lost := &entity.Stage{ID: uuid.New(), Name: "Perdido", Type: enum.StageTypeLost}
	stages := map[uuid.UUID]*entity.Stage{open.ID: open, won.ID: won, lost.ID: lost}
	return stages, open, won, lost
}

func TestStagnantLeadsBoundary(t *testing.T) {
	stages, open, _, _ := viewFixtures()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	lead := entity.Lead{ID: uuid.New(), StatusID: open.ID, LastUpdate: created}

	// Day 7: not stagnant.
	day7 := created.Add(7 * 24 * time.Hour)
	assert.Empty(t, StagnantLeads([]entity.Lead{lead}, stages, day7))

	// Day 8 exactly: stagnant (boundary is >= 8 whole days).
	day8 := created.Add(8 * 24 * time.Hour)
	assert.Len(t, StagnantLeads([]entity.Lead{lead}, stages, day8), 1)

	// Day 9: still stagnant.
	day9 := created.Add(9 * 24 * time.Hour)
	assert.Len(t, StagnantLeads([]entity.Lead{lead}, stages, day9), 1)
}

func TestStagnantLeadsExcludesTerminalStages(t *testing.T) {
	stages, open, won, lost := viewFixtures()
	old := time.Now().Add(-90 * 24 * time.Hour)

	leads := []entity.Lead{
		{ID: uuid.New(), StatusID: won.ID, LastUpdate: old},
		{ID: uuid.New(), StatusID: lost.ID, LastUpdate: old},
		{ID: uuid.New(), StatusID: open.ID, LastUpdate: old},
	}

	stagnant := StagnantLeads(leads, stages, time.Now())
	require.Len(t, stagnant, 1)
	assert.Equal(t, open.ID, stagnant[0].StatusID)
}

func TestStagnantLeadsSkipsZeroLastUpdate(t *testing.T) {
	stages, open, _, _ := viewFixtures()
	leads := []entity.Lead{{ID: uuid.New(), StatusID: open.ID}}
	assert.Empty(t, StagnantLeads(leads, stages, time.Now()))
}

func TestStagnantLeadsSkipsUnknownStage(t *testing.T) {
	stages, _, _, _ := viewFixtures()
	leads := []entity.Lead{{
		ID:         uuid.New(),
		StatusID:   uuid.New(),
		LastUpdate: time.Now().Add(-30 * 24 * time.Hour),
	}}
	assert.Empty(t, StagnantLeads(leads, stages, time.Now()))
}

func TestSellerNotificationsScopedToOwner(t *testing.T) {
	seller := &entity.User{ID: uuid.New(), Role: enum.RoleVendedor}
	other := uuid.New()

	leads := []entity.Lead{
		{ID: uuid.New(), OwnerID: seller.ID, NotificationForSeller: true},
		{ID: uuid.New(), OwnerID: seller.ID, NotificationForSeller: false},
		{ID: uuid.New(), OwnerID: other, NotificationForSeller: true},
	}

	got := SellerNotifications(leads, seller)
	require.Len(t, got, 1)
	assert.Equal(t, seller.ID, got[0].OwnerID)
}

func TestSellerNotificationsEmptyForManagers(t *testing.T) {
	manager := &entity.User{ID: uuid.New(), Role: enum.RoleSupervisor}
	leads := []entity.Lead{{ID: uuid.New(), OwnerID: manager.ID, NotificationForSeller: true}}
	assert.Empty(t, SellerNotifications(leads, manager))
}

func TestManagerResponseNotifications(t *testing.T) {
	manager := &entity.User{ID: uuid.New(), Role: enum.RoleAdmin}
	otherManager := uuid.New()
	managerID := manager.ID

	leads := []entity.Lead{
		{ID: uuid.New(), SellerHasViewedNotification: true, NotificationForManagerID: &managerID},
		{ID: uuid.New(), SellerHasViewedNotification: true, NotificationForManagerID: &otherManager},
		{ID: uuid.New(), SellerHasViewedNotification: false, NotificationForManagerID: &managerID},
		{ID: uuid.New(), SellerHasViewedNotification: true},
	}

	got := ManagerResponseNotifications(leads, manager)
	require.Len(t, got, 1)
	assert.Equal(t, managerID, *got[0].NotificationForManagerID)

	seller := &entity.User{ID: uuid.New(), Role: enum.RoleVendedor}
	assert.Empty(t, ManagerResponseNotifications(leads, seller))
}

func TestVisibleLeads(t *testing.T) {
	seller := &entity.User{ID: uuid.New(), Role: enum.RoleVendedor}
	manager := &entity.User{ID: uuid.New(), Role: enum.RoleSupervisor}

	leads := []entity.Lead{
		{ID: uuid.New(), OwnerID: seller.ID},
		{ID: uuid.New(), OwnerID: uuid.New()},
		{ID: uuid.New(), OwnerID: seller.ID},
	}

	assert.Len(t, VisibleLeads(leads, manager), 3)
	assert.Len(t, VisibleLeads(leads, seller), 2)
}

func TestDaysStagnant(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	lead := entity.Lead{LastUpdate: now.Add(-36 * time.Hour)}
	assert.Equal(t, 1, DaysStagnant(lead, now))

	future := entity.Lead{LastUpdate: now.Add(time.Hour)}
	assert.Equal(t, 0, DaysStagnant(future, now))
}
