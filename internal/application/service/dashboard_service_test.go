package service

import (
	"context"
	"testing"
	"time"

	"github.com/prospecta/prospecta-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) dashboardService() *DashboardService {
	return NewDashboardService(f.leadRepo, f.stageRepo, logger.New(logger.Config{Level: "error"}))
}

func TestDashboardStageCountsAndVisibility(t *testing.T) {
	f := newFixture(t)
	leadSvc := f.leadService()
	svc := f.dashboardService()

	_, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Ana García", StatusID: f.openStage.ID, OwnerID: f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)
	_, err = leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Bruno Díaz", StatusID: f.wonStage.ID, OwnerID: f.admin.ID,
	}, &f.admin)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background()))

	adminView, err := svc.GetDashboard(context.Background(), &f.admin)
	require.NoError(t, err)
	assert.Equal(t, 2, adminView.TotalLeads)
	require.Len(t, adminView.StageCounts, 2)
	assert.Equal(t, "Nuevo Prospecto", adminView.StageCounts[0].Name)
	assert.Equal(t, 1, adminView.StageCounts[0].Count)
	assert.Equal(t, 1, adminView.StageCounts[1].Count)

	sellerView, err := svc.GetDashboard(context.Background(), &f.seller)
	require.NoError(t, err)
	assert.Equal(t, 1, sellerView.TotalLeads)
	assert.Equal(t, 1, sellerView.StageCounts[0].Count)
	assert.Equal(t, 0, sellerView.StageCounts[1].Count)
}

func TestDashboardSurfacesStagnantLeads(t *testing.T) {
	f := newFixture(t)
	leadSvc := f.leadService()
	svc := f.dashboardService()

	stale, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Ana García", StatusID: f.openStage.ID, OwnerID: f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)

	// Age the lead past the stagnation threshold
	stale.LastUpdate = time.Now().AddDate(0, 0, -9)
	require.NoError(t, f.leadRepo.Save(context.Background(), stale))

	// A won lead never counts as stagnant, no matter how old
	oldWon, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Bruno Díaz", StatusID: f.wonStage.ID, OwnerID: f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)
	oldWon.LastUpdate = time.Now().AddDate(0, 0, -30)
	require.NoError(t, f.leadRepo.Save(context.Background(), oldWon))

	require.NoError(t, svc.Refresh(context.Background()))

	view, err := svc.GetDashboard(context.Background(), &f.admin)
	require.NoError(t, err)
	require.Len(t, view.StagnantLeads, 1)
	assert.Equal(t, stale.ID, view.StagnantLeads[0].Lead.ID)
	assert.Equal(t, 9, view.StagnantLeads[0].DaysStagnant)
}

func TestDashboardNotifications(t *testing.T) {
	f := newFixture(t)
	leadSvc := f.leadService()
	svc := f.dashboardService()

	lead, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Ana García", StatusID: f.openStage.ID, OwnerID: f.seller.ID,
	}, &f.seller)
	require.NoError(t, err)

	// Manager leaves a note: the seller is flagged
	_, err = leadSvc.UpdateLead(context.Background(), lead.ID, &SaveLeadInput{
		Name: lead.Name, StatusID: lead.StatusID, OwnerID: lead.OwnerID,
		NewObservation: "Revisar condiciones",
	}, &f.admin)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background()))

	sellerView, err := svc.GetDashboard(context.Background(), &f.seller)
	require.NoError(t, err)
	require.Len(t, sellerView.SellerNotifications, 1)
	assert.Empty(t, sellerView.ManagerNotifications)

	// Seller replies: the manager is notified back
	_, err = leadSvc.UpdateLead(context.Background(), lead.ID, &SaveLeadInput{
		Name: lead.Name, StatusID: lead.StatusID, OwnerID: lead.OwnerID,
		NewObservation: "Condiciones enviadas",
	}, &f.seller)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background()))

	adminView, err := svc.GetDashboard(context.Background(), &f.admin)
	require.NoError(t, err)
	require.Len(t, adminView.ManagerNotifications, 1)
	assert.Empty(t, adminView.SellerNotifications)
}

func TestGetDashboardLoadsSnapshotOnFirstUse(t *testing.T) {
	f := newFixture(t)
	leadSvc := f.leadService()
	svc := f.dashboardService()

	_, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name: "Ana García", StatusID: f.openStage.ID, OwnerID: f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)

	// No explicit Refresh: the first request loads the snapshot itself
	view, err := svc.GetDashboard(context.Background(), &f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalLeads)
	assert.False(t, view.RefreshedAt.IsZero())
}
