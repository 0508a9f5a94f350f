package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/lifecycle"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/logger"
)

// RefreshInterval is how often the dashboard snapshot is re-derived, so
// stagnant leads surface without any lead being saved.
const RefreshInterval = time.Minute

// DashboardService derives the dashboard views from a snapshot of the lead
// collection. A background ticker refreshes the snapshot at least once per
// minute; requests read the cached snapshot and filter it per actor.
type DashboardService struct {
	leadRepo  repository.LeadRepository
	stageRepo repository.StageRepository
	log       *logger.Logger

	mu          sync.RWMutex
	leads       []entity.Lead
	stages      map[uuid.UUID]*entity.Stage
	refreshedAt time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	leadRepo repository.LeadRepository,
	stageRepo repository.StageRepository,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		leadRepo:  leadRepo,
		stageRepo: stageRepo,
		log:       log,
	}
}

// StageCount is the number of visible leads sitting in one stage
type StageCount struct {
	StageID uuid.UUID `json:"stage_id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Count   int       `json:"count"`
}

// StagnantLead is a stagnant lead with its idle day count
type StagnantLead struct {
	Lead         entity.Lead `json:"lead"`
	DaysStagnant int         `json:"days_stagnant"`
}

// DashboardData is the full dashboard payload for one actor
type DashboardData struct {
	TotalLeads           int            `json:"total_leads"`
	StageCounts          []StageCount   `json:"stage_counts"`
	StagnantLeads        []StagnantLead `json:"stagnant_leads"`
	SellerNotifications  []entity.Lead  `json:"seller_notifications"`
	ManagerNotifications []entity.Lead  `json:"manager_notifications"`
	RefreshedAt          time.Time      `json:"refreshed_at"`
}

// StartRefresher refreshes the snapshot immediately and then on every tick
// until the context is cancelled.
func (s *DashboardService) StartRefresher(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("initial dashboard refresh failed")
	}

	go func() {
		ticker := time.NewTicker(RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.Error().Err(err).Msg("dashboard refresh failed")
				}
			}
		}
	}()
}

// Refresh reloads the lead and stage snapshot
func (s *DashboardService) Refresh(ctx context.Context) error {
	leads, err := s.leadRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	stageList, err := s.stageRepo.List(ctx)
	if err != nil {
		return err
	}

	stages := make(map[uuid.UUID]*entity.Stage, len(stageList))
	for i := range stageList {
		stages[stageList[i].ID] = &stageList[i]
	}

	s.mu.Lock()
	s.leads = leads
	s.stages = stages
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	s.log.Debug().Int("leads", len(leads)).Msg("dashboard snapshot refreshed")
	return nil
}

// GetDashboard derives the dashboard for the actor from the cached
// snapshot. When the snapshot has never loaded it refreshes synchronously.
func (s *DashboardService) GetDashboard(ctx context.Context, actor *entity.User) (*DashboardData, error) {
	s.mu.RLock()
	loaded := !s.refreshedAt.IsZero()
	s.mu.RUnlock()
	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	leads := s.leads
	stages := s.stages
	refreshedAt := s.refreshedAt
	s.mu.RUnlock()

	now := time.Now()
	visible := lifecycle.VisibleLeads(leads, actor)

	data := &DashboardData{
		TotalLeads:           len(visible),
		SellerNotifications:  lifecycle.SellerNotifications(leads, actor),
		ManagerNotifications: lifecycle.ManagerResponseNotifications(leads, actor),
		RefreshedAt:          refreshedAt,
	}

	counts := make(map[uuid.UUID]int, len(stages))
	for _, lead := range visible {
		counts[lead.StatusID]++
	}
	for _, stage := range sortedStages(stages) {
		data.StageCounts = append(data.StageCounts, StageCount{
			StageID: stage.ID,
			Name:    stage.Name,
			Type:    stage.Type.String(),
			Count:   counts[stage.ID],
		})
	}

	for _, lead := range lifecycle.StagnantLeads(visible, stages, now) {
		data.StagnantLeads = append(data.StagnantLeads, StagnantLead{
			Lead:         lead,
			DaysStagnant: lifecycle.DaysStagnant(lead, now),
		})
	}

	return data, nil
}

func sortedStages(stages map[uuid.UUID]*entity.Stage) []*entity.Stage {
	out := make([]*entity.Stage, 0, len(stages))
	for _, stage := range stages {
		out = append(out, stage)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
