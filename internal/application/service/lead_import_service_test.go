package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/pkg/logger"
	"github.com/prospecta/prospecta-api/pkg/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) importService(productRepo *fakeProductRepo, providerRepo *fakeProviderRepo) *LeadImportService {
	return NewLeadImportService(
		f.leadRepo,
		f.stageRepo,
		productRepo,
		providerRepo,
		f.userRepo,
		logger.New(logger.Config{Level: "error"}),
	)
}

func workbookBytes(t *testing.T, rows []spreadsheet.LeadRow) *bytes.Buffer {
	t.Helper()
	file, err := spreadsheet.ExportLeads(rows)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = file.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestImportLeadsKeepsSuccessesOnPartialFailure(t *testing.T) {
	f := newFixture(t)
	productRepo := &fakeProductRepo{}
	require.NoError(t, productRepo.Create(context.Background(), &entity.Product{Name: "Plan Salud"}))
	svc := f.importService(productRepo, &fakeProviderRepo{})

	buf := workbookBytes(t, []spreadsheet.LeadRow{
		{Name: "Ana García", StageName: "Nuevo Prospecto", OwnerEmail: f.seller.Email, Products: []string{"Plan Salud"}},
		{Name: "Bruno Díaz", StageName: "Nuevo Prospecto", Observations: "Contactar pronto"},
		{Name: "Sin Etapa"},
		{Name: "Carla Ruiz", StageName: "Etapa Fantasma"},
		{Name: "Diego Sosa", StageName: "Nuevo Prospecto", OwnerEmail: "nadie@prospecta.test"},
	})

	result, err := svc.ImportLeads(context.Background(), buf, &f.admin)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)

	// Errors are reported by worksheet row (header is row 1)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "Etapa")
	assert.Equal(t, 5, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "Etapa Fantasma")
	assert.Equal(t, 6, result.Errors[2].Row)
	assert.Contains(t, result.Errors[2].Message, "nadie@prospecta.test")

	leads, err := f.leadRepo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	for _, lead := range leads {
		assert.Equal(t, 1, lead.Version)
		assert.Len(t, lead.StatusHistory, 1)
	}
}

func TestImportLeadsDefaultsOwnerToActor(t *testing.T) {
	f := newFixture(t)
	svc := f.importService(&fakeProductRepo{}, &fakeProviderRepo{})

	buf := workbookBytes(t, []spreadsheet.LeadRow{
		{Name: "Ana García", StageName: "Nuevo Prospecto"},
	})

	result, err := svc.ImportLeads(context.Background(), buf, &f.seller)
	require.NoError(t, err)
	require.Equal(t, 1, result.Successful)

	leads, err := f.leadRepo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, f.seller.ID, leads[0].OwnerID)
}

func TestImportLeadsReportsWriteFailures(t *testing.T) {
	f := newFixture(t)
	f.leadRepo.createErr = errors.New("connection reset")
	svc := f.importService(&fakeProductRepo{}, &fakeProviderRepo{})

	buf := workbookBytes(t, []spreadsheet.LeadRow{
		{Name: "Ana García", StageName: "Nuevo Prospecto"},
		{Name: "Bruno Díaz", StageName: "Nuevo Prospecto"},
	})

	result, err := svc.ImportLeads(context.Background(), buf, &f.admin)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "connection reset")
}

func TestBillingReportOnlyWonClients(t *testing.T) {
	f := newFixture(t)
	svc := f.importService(&fakeProductRepo{}, &fakeProviderRepo{})
	leadSvc := f.leadService()

	won, err := leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name:     "Ana García",
		Company:  "Acme SRL",
		StatusID: f.wonStage.ID,
		OwnerID:  f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)

	_, err = leadSvc.SaveBilling(context.Background(), won.ID, &SaveBillingInput{
		ClientStatus: "Activo",
		Month:        "02-2026",
		Billed:       true,
	}, &f.admin)
	require.NoError(t, err)
	_, err = leadSvc.SaveBilling(context.Background(), won.ID, &SaveBillingInput{
		ClientStatus: "Activo",
		Month:        "03-2026",
		Billed:       false,
	}, &f.admin)
	require.NoError(t, err)

	// An open-stage lead never shows up in the report
	_, err = leadSvc.CreateLead(context.Background(), &SaveLeadInput{
		Name:     "Bruno Díaz",
		StatusID: f.openStage.ID,
		OwnerID:  f.seller.ID,
	}, &f.admin)
	require.NoError(t, err)

	file, err := svc.BillingReport(context.Background())
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(spreadsheet.BillingSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ana García", rows[1][0])
	assert.Equal(t, "02-2026", rows[1][4])
	assert.Equal(t, "Sí", rows[1][5])
	assert.Equal(t, "03-2026", rows[2][4])
	assert.Equal(t, "No", rows[2][5])
}
