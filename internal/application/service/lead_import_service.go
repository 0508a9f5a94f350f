package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/domain/lifecycle"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/prospecta/prospecta-api/pkg/logger"
	"github.com/prospecta/prospecta-api/pkg/spreadsheet"
	"github.com/xuri/excelize/v2"
)

// LeadImportService handles the spreadsheet surface: template download, bulk
// import, lead export and the billing report.
type LeadImportService struct {
	leadRepo     repository.LeadRepository
	stageRepo    repository.StageRepository
	productRepo  repository.ProductRepository
	providerRepo repository.ProviderRepository
	userRepo     repository.UserRepository
	log          *logger.Logger
}

// NewLeadImportService creates a new lead import service
func NewLeadImportService(
	leadRepo repository.LeadRepository,
	stageRepo repository.StageRepository,
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *LeadImportService {
	return &LeadImportService{
		leadRepo:     leadRepo,
		stageRepo:    stageRepo,
		productRepo:  productRepo,
		providerRepo: providerRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// ImportRowError describes why one worksheet row was rejected
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult aggregates the outcome of a bulk import. Successful rows are
// kept even when other rows fail.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// Template returns the downloadable import workbook
func (s *LeadImportService) Template() (*excelize.File, error) {
	return spreadsheet.Template()
}

// ImportLeads parses the uploaded workbook, resolves names against the
// reference data, and persists the valid rows concurrently. Rows that fail
// validation or persistence are reported per worksheet row; they never block
// the rows that succeeded.
func (s *LeadImportService) ImportLeads(ctx context.Context, r io.Reader, actor *entity.User) (*ImportResult, error) {
	rows, err := spreadsheet.ParseLeads(r)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	names, refs, err := s.loadNameIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	now := time.Now()

	type pending struct {
		row  int
		lead *entity.Lead
	}
	var valid []pending

	for _, row := range rows {
		lead, rowErr := s.buildLead(row, actor, names, refs, now)
		if rowErr != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: row.Row, Message: rowErr.Error()})
			continue
		}
		valid = append(valid, pending{row: row.Row, lead: lead})
	}

	// Persist all valid rows in parallel. Failures are collected, not
	// propagated; rows already written stay written.
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, p := range valid {
		wg.Add(1)
		go func(p pending) {
			defer wg.Done()
			if err := s.leadRepo.Create(ctx, p.lead); err != nil {
				s.log.Error().Err(err).Int("row", p.row).Msg("import row write failed")
				mu.Lock()
				result.Errors = append(result.Errors, ImportRowError{
					Row:     p.row,
					Message: "Storage write failed: " + err.Error(),
				})
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Successful++
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	result.Failed = result.TotalRows - result.Successful
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	s.log.Info().
		Int("total", result.TotalRows).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("lead import finished")

	return result, nil
}

// ExportLeads builds a workbook of the leads visible to the actor
func (s *LeadImportService) ExportLeads(ctx context.Context, actor *entity.User) (*excelize.File, error) {
	leads, err := s.leadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	leads = lifecycle.VisibleLeads(leads, actor)

	names, _, err := s.loadNameIndex(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]spreadsheet.LeadRow, 0, len(leads))
	for _, lead := range leads {
		row := spreadsheet.LeadRow{
			Name:         lead.Name,
			Company:      lead.Company,
			Email:        lead.Email,
			Phone:        lead.Phone,
			StageName:    names.stageNames[lead.StatusID],
			OwnerEmail:   names.userEmails[lead.OwnerID],
			Observations: lead.Observations,
		}
		for _, pid := range lead.ProductIDs {
			if name, ok := names.productNames[pid]; ok {
				row.Products = append(row.Products, name)
			}
		}
		if lead.ProviderID != nil {
			row.ProviderName = names.providerNames[*lead.ProviderID]
		}
		rows = append(rows, row)
	}

	return spreadsheet.ExportLeads(rows)
}

// BillingReport builds the won-clients billing workbook, one row per client
// and recorded month.
func (s *LeadImportService) BillingReport(ctx context.Context) (*excelize.File, error) {
	leads, err := s.leadRepo.ListByStageType(ctx, string(enum.StageTypeWon))
	if err != nil {
		return nil, err
	}

	names, _, err := s.loadNameIndex(ctx)
	if err != nil {
		return nil, err
	}

	var rows []spreadsheet.BillingRow
	for _, lead := range leads {
		status := ""
		if lead.ClientStatus != nil {
			status = lead.ClientStatus.String()
		}

		months := make([]string, 0, len(lead.BillingHistory))
		for month := range lead.BillingHistory {
			months = append(months, month)
		}
		sort.Strings(months)

		for _, month := range months {
			rows = append(rows, spreadsheet.BillingRow{
				ClientName:   lead.Name,
				Company:      lead.Company,
				OwnerName:    names.userNames[lead.OwnerID],
				ClientStatus: status,
				Month:        month,
				Billed:       lead.BillingHistory[month],
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ClientName != rows[j].ClientName {
			return rows[i].ClientName < rows[j].ClientName
		}
		return rows[i].Month < rows[j].Month
	})

	return spreadsheet.BillingReport(rows)
}

// nameIndex resolves spreadsheet cell values to ids and back
type nameIndex struct {
	stageByName    map[string]uuid.UUID
	userByEmail    map[string]uuid.UUID
	productByName  map[string]uuid.UUID
	providerByName map[string]uuid.UUID

	stageNames    map[uuid.UUID]string
	userNames     map[uuid.UUID]string
	userEmails    map[uuid.UUID]string
	productNames  map[uuid.UUID]string
	providerNames map[uuid.UUID]string
}

func (s *LeadImportService) loadNameIndex(ctx context.Context) (*nameIndex, lifecycle.Refs, error) {
	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		return nil, lifecycle.Refs{}, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, lifecycle.Refs{}, err
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, lifecycle.Refs{}, err
	}
	providers, err := s.providerRepo.List(ctx)
	if err != nil {
		return nil, lifecycle.Refs{}, err
	}

	idx := &nameIndex{
		stageByName:    make(map[string]uuid.UUID, len(stages)),
		userByEmail:    make(map[string]uuid.UUID, len(users)),
		productByName:  make(map[string]uuid.UUID, len(products)),
		providerByName: make(map[string]uuid.UUID, len(providers)),
		stageNames:     make(map[uuid.UUID]string, len(stages)),
		userNames:      make(map[uuid.UUID]string, len(users)),
		userEmails:     make(map[uuid.UUID]string, len(users)),
		productNames:   make(map[uuid.UUID]string, len(products)),
		providerNames:  make(map[uuid.UUID]string, len(providers)),
	}
	refs := lifecycle.Refs{
		Stages: make(map[uuid.UUID]*entity.Stage, len(stages)),
		Users:  make(map[uuid.UUID]*entity.User, len(users)),
	}

	for i := range stages {
		idx.stageByName[stages[i].Name] = stages[i].ID
		idx.stageNames[stages[i].ID] = stages[i].Name
		refs.Stages[stages[i].ID] = &stages[i]
	}
	for i := range users {
		idx.userByEmail[users[i].Email] = users[i].ID
		idx.userNames[users[i].ID] = users[i].Name
		idx.userEmails[users[i].ID] = users[i].Email
		refs.Users[users[i].ID] = &users[i]
	}
	for i := range products {
		idx.productByName[products[i].Name] = products[i].ID
		idx.productNames[products[i].ID] = products[i].Name
	}
	for i := range providers {
		idx.providerByName[providers[i].Name] = providers[i].ID
		idx.providerNames[providers[i].ID] = providers[i].Name
	}

	return idx, refs, nil
}

// buildLead turns a parsed worksheet row into the initial lead record
func (s *LeadImportService) buildLead(row spreadsheet.LeadRow, actor *entity.User, names *nameIndex, refs lifecycle.Refs, now time.Time) (*entity.Lead, error) {
	if row.Name == "" {
		return nil, fmt.Errorf("Nombre Completo is required")
	}
	if row.StageName == "" {
		return nil, fmt.Errorf("Etapa is required")
	}

	stageID, ok := names.stageByName[row.StageName]
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", row.StageName)
	}

	ownerID := actor.ID
	if row.OwnerEmail != "" {
		ownerID, ok = names.userByEmail[row.OwnerEmail]
		if !ok {
			return nil, fmt.Errorf("unknown seller %q", row.OwnerEmail)
		}
	}

	input := lifecycle.FormSnapshot{
		Name:           row.Name,
		Company:        row.Company,
		Email:          row.Email,
		Phone:          row.Phone,
		StatusID:       stageID,
		OwnerID:        ownerID,
		NewObservation: row.Observations,
	}

	for _, productName := range row.Products {
		pid, ok := names.productByName[productName]
		if !ok {
			return nil, fmt.Errorf("unknown product %q", productName)
		}
		input.ProductIDs = append(input.ProductIDs, pid)
	}

	if row.ProviderName != "" {
		providerID, ok := names.providerByName[row.ProviderName]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q", row.ProviderName)
		}
		input.ProviderID = &providerID
	}

	return lifecycle.ComputeNextLead(nil, input, actor, refs, now)
}
