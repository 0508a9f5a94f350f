// Package lifecycle holds the pure rules governing how a lead mutates on
// every save and how dashboard views are derived from a snapshot. Nothing in
// this package touches storage or carries hidden state; services feed it the
// reference records it validates against and persist whatever it returns.
package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/pkg/apperror"
)

// ObservationTimeFormat is the timestamp layout used inside appended
// observation blocks.
const ObservationTimeFormat = "02/01/2006 15:04"

// FormSnapshot is the submitted form state a save is computed from. Fields
// the form does not carry (client status, billing history) fall back to the
// previous lead's values.
type FormSnapshot struct {
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

// Refs carries the reference records a save is validated against.
type Refs struct {
	Stages map[uuid.UUID]*entity.Stage
	Users  map[uuid.UUID]*entity.User
}

// ComputeNextLead produces the complete next lead record from the previous
// lead (nil on creation), the submitted form snapshot, and the acting user.
// It validates the status and owner references before mutating anything, so
// a validation failure never corrupts history.
func ComputeNextLead(previous *entity.Lead, input FormSnapshot, actor *entity.User, refs Refs, now time.Time) (*entity.Lead, error) {
	targetStage, ok := refs.Stages[input.StatusID]
	if !ok {
		return nil, apperror.NewFieldValidationError("status", "Status does not resolve to a known stage")
	}
	if _, ok := refs.Users[input.OwnerID]; !ok {
		return nil, apperror.NewFieldValidationError("owner_id", "Owner does not resolve to a known user")
	}

	next := &entity.Lead{
		Name:       input.Name,
		Company:    input.Company,
		Email:      input.Email,
		Phone:      input.Phone,
		StatusID:   input.StatusID,
		ProductIDs: append(entity.UUIDSlice{}, input.ProductIDs...),
		ProviderID: normalizeID(input.ProviderID),
		OwnerID:    input.OwnerID,
	}
	next.AssignedOffice = normalizeText(input.AssignedOffice)

	if previous != nil {
		next.ID = previous.ID
		next.CreatedAt = previous.CreatedAt
		next.Version = previous.Version + 1
		next.Observations = previous.Observations
		next.StatusHistory = append(entity.StatusHistory{}, previous.StatusHistory...)
		next.TagHistory = append(entity.TagHistory{}, previous.TagHistory...)
		next.AffiliateNumber = previous.AffiliateNumber
		next.NotificationForManagerID = previous.NotificationForManagerID
		next.ClientStatus = previous.ClientStatus
		next.BillingHistory = previous.BillingHistory.Clone()
	} else {
		next.ID = uuid.New()
		next.CreatedAt = now
		next.Version = 1
		next.StatusHistory = entity.StatusHistory{}
		next.TagHistory = entity.TagHistory{}
		next.BillingHistory = entity.BillingHistory{}
	}
	next.LastUpdate = now

	// Status history: one entry per distinct transition, including creation.
	if previous == nil || previous.StatusID != input.StatusID {
		next.StatusHistory = append(next.StatusHistory, entity.StatusChange{
			Status: input.StatusID,
			Date:   now,
		})
	}

	// Tag history: keyed off the first element only; a set in shape, a
	// single tag in behavior.
	if input.TagID != nil {
		next.TagIDs = entity.UUIDSlice{*input.TagID}
		if previous == nil || previous.CurrentTagID() == nil || *previous.CurrentTagID() != *input.TagID {
			next.TagHistory = append(next.TagHistory, entity.TagChange{
				TagID: *input.TagID,
				Date:  now,
			})
		}
	} else {
		next.TagIDs = entity.UUIDSlice{}
	}

	observationAdded := false
	if text := strings.TrimSpace(input.NewObservation); text != "" {
		block := "\n---\n[" + now.Format(ObservationTimeFormat) + "] por " + actor.Name + ":\n" + text
		next.Observations = strings.TrimSpace(next.Observations + block)
		observationAdded = true
	}

	applyNotificationRules(next, previous, actor, observationAdded)

	// The affiliate number is only settable while the target stage is won;
	// otherwise the previous value is carried over, never cleared.
	if targetStage.Type == enum.StageTypeWon {
		next.AffiliateNumber = normalizeText(input.AffiliateNumber)
	}

	return next, nil
}

// applyNotificationRules updates the notification triple on save. Managers
// leaving an observation flag the seller; sellers replying to a flagged lead
// flag the manager back.
func applyNotificationRules(next, previous *entity.Lead, actor *entity.User, observationAdded bool) {
	if actor.IsManager() {
		next.SellerHasViewedNotification = false
		if observationAdded {
			next.NotificationForSeller = true
			managerID := actor.ID
			next.NotificationForManagerID = &managerID
		} else if previous != nil {
			next.NotificationForSeller = previous.NotificationForSeller
		}
		return
	}

	next.NotificationForSeller = false
	if observationAdded {
		next.SellerHasViewedNotification = previous != nil &&
			previous.NotificationForSeller &&
			previous.NotificationForManagerID != nil
	} else if previous != nil {
		next.SellerHasViewedNotification = previous.SellerHasViewedNotification
	}
}

func normalizeID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	out := *id
	return &out
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
