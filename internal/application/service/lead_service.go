package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/domain/lifecycle"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/prospecta/prospecta-api/pkg/pagination"
)

// LeadService orchestrates lead saves. Every create and update runs through
// lifecycle.ComputeNextLead so history, notifications and affiliate gating
// are applied uniformly no matter which endpoint initiated the save.
type LeadService struct {
	leadRepo  repository.LeadRepository
	stageRepo repository.StageRepository
	userRepo  repository.UserRepository
}

// NewLeadService creates a new lead service
func NewLeadService(
	leadRepo repository.LeadRepository,
	stageRepo repository.StageRepository,
	userRepo repository.UserRepository,
) *LeadService {
	return &LeadService{
		leadRepo:  leadRepo,
		stageRepo: stageRepo,
		userRepo:  userRepo,
	}
}

// SaveLeadInput is the submitted form state for a lead create or update
type SaveLeadInput struct {
	Name            string
	Company         string
	Email           string
	Phone           string
	StatusID        uuid.UUID
	TagID           *uuid.UUID
	ProductIDs      []uuid.UUID
	ProviderID      *uuid.UUID
	OwnerID         uuid.UUID
	AssignedOffice  *string
	AffiliateNumber *string
	NewObservation  string
}

// CreateLead creates a lead from the submitted form
func (s *LeadService) CreateLead(ctx context.Context, input *SaveLeadInput, actor *entity.User) (*entity.Lead, error) {
	refs, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := lifecycle.ComputeNextLead(nil, s.snapshot(input), actor, refs, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, apperror.NewRemoteWriteError(err)
	}
	return lead, nil
}

// UpdateLead replaces a lead with the next record computed from the form.
// Last write wins; the version column is advisory only.
func (s *LeadService) UpdateLead(ctx context.Context, id uuid.UUID, input *SaveLeadInput, actor *entity.User) (*entity.Lead, error) {
	previous, err := s.getVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := lifecycle.ComputeNextLead(previous, s.snapshot(input), actor, refs, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, apperror.NewRemoteWriteError(err)
	}
	return lead, nil
}

// MoveToStage moves a lead to another stage (the board drag-and-drop). The
// move is an ordinary save: same history and notification rules apply.
func (s *LeadService) MoveToStage(ctx context.Context, id, stageID uuid.UUID, actor *entity.User) (*entity.Lead, error) {
	previous, err := s.getVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	input := s.snapshotFromLead(previous)
	input.StatusID = stageID
	if stageID != previous.StatusID {
		// Tags are scoped to their stage, so a board move drops the tag
		input.TagID = nil
	}

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := lifecycle.ComputeNextLead(previous, input, actor, refs, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, apperror.NewRemoteWriteError(err)
	}
	return lead, nil
}

// SaveBillingInput is the billing modal submission for a won client
type SaveBillingInput struct {
	ClientStatus enum.ClientStatus
	Month        string
	Billed       bool
}

// SaveBilling records the client status and one month's billed flag on a
// won lead. Months use the canonical "MM-YYYY" key.
func (s *LeadService) SaveBilling(ctx context.Context, id uuid.UUID, input *SaveBillingInput, actor *entity.User) (*entity.Lead, error) {
	lead, err := s.getVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if !input.ClientStatus.IsValid() {
		return nil, apperror.NewFieldValidationError("client_status", "Client status must be Activo or Inactivo")
	}
	if !entity.IsValidMonthKey(input.Month) {
		return nil, apperror.NewFieldValidationError("month", "Month must use the MM-YYYY format")
	}

	stage, err := s.stageRepo.GetByID(ctx, lead.StatusID)
	if err != nil {
		return nil, err
	}
	if stage == nil || stage.Type != enum.StageTypeWon {
		return nil, apperror.NewFieldValidationError("status", "Billing can only be recorded on won clients")
	}

	status := input.ClientStatus
	lead.ClientStatus = &status
	lead.BillingHistory = lead.BillingHistory.Clone()
	lead.BillingHistory[input.Month] = input.Billed
	lead.Version++
	lead.LastUpdate = time.Now()

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, apperror.NewRemoteWriteError(err)
	}
	return lead, nil
}

// AckSellerNotification clears the seller flag when the owning seller opens
// a flagged lead. It does not touch history or the version counter.
func (s *LeadService) AckSellerNotification(ctx context.Context, id uuid.UUID, actor *entity.User) (*entity.Lead, error) {
	lead, err := s.getVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if actor.IsManager() || lead.OwnerID != actor.ID {
		return nil, apperror.ErrForbidden
	}

	if !lead.NotificationForSeller {
		return lead, nil
	}

	lead.NotificationForSeller = false
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, apperror.NewRemoteWriteError(err)
	}
	return lead, nil
}

// GetLead retrieves a lead visible to the actor
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID, actor *entity.User) (*entity.Lead, error) {
	return s.getVisible(ctx, id, actor)
}

// ListLeads lists leads with pagination. Managers see every lead, sellers
// only their own.
func (s *LeadService) ListLeads(ctx context.Context, actor *entity.User, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Lead], error) {
	leads, total, err := s.leadRepo.List(ctx, actor.ID, params, search, actor.IsManager())
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}

func (s *LeadService) getVisible(ctx context.Context, id uuid.UUID, actor *entity.User) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	if !actor.IsManager() && lead.OwnerID != actor.ID {
		return nil, apperror.ErrForbidden
	}
	return lead, nil
}

func (s *LeadService) loadRefs(ctx context.Context) (lifecycle.Refs, error) {
	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		return lifecycle.Refs{}, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return lifecycle.Refs{}, err
	}

	refs := lifecycle.Refs{
		Stages: make(map[uuid.UUID]*entity.Stage, len(stages)),
		Users:  make(map[uuid.UUID]*entity.User, len(users)),
	}
	for i := range stages {
		refs.Stages[stages[i].ID] = &stages[i]
	}
	for i := range users {
		refs.Users[users[i].ID] = &users[i]
	}
	return refs, nil
}

func (s *LeadService) snapshot(input *SaveLeadInput) lifecycle.FormSnapshot {
	return lifecycle.FormSnapshot{
		Name:            input.Name,
		Company:         input.Company,
		Email:           input.Email,
		Phone:           input.Phone,
		StatusID:        input.StatusID,
		TagID:           input.TagID,
		ProductIDs:      input.ProductIDs,
		ProviderID:      input.ProviderID,
		OwnerID:         input.OwnerID,
		AssignedOffice:  input.AssignedOffice,
		AffiliateNumber: input.AffiliateNumber,
		NewObservation:  input.NewObservation,
	}
}

func (s *LeadService) snapshotFromLead(lead *entity.Lead) lifecycle.FormSnapshot {
	return lifecycle.FormSnapshot{
		Name:            lead.Name,
		Company:         lead.Company,
		Email:           lead.Email,
		Phone:           lead.Phone,
		StatusID:        lead.StatusID,
		TagID:           lead.CurrentTagID(),
		ProductIDs:      lead.ProductIDs,
		ProviderID:      lead.ProviderID,
		OwnerID:         lead.OwnerID,
		AssignedOffice:  lead.AssignedOffice,
		AffiliateNumber: lead.AffiliateNumber,
	}
}
