package lifecycle

import (
	"time"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
)

// StagnantAfterDays is the fixed policy threshold: an open-stage lead
// untouched for at least this many whole days is stagnant.
const StagnantAfterDays = 8

// StagnantLeads returns the leads whose stage is open and whose last update
// is at least StagnantAfterDays whole days in the past. Terminal (won/lost)
// leads never count, regardless of age.
func StagnantLeads(leads []entity.Lead, stages map[uuid.UUID]*entity.Stage, now time.Time) []entity.Lead {
	var out []entity.Lead
	for _, lead := range leads {
		stage, ok := stages[lead.StatusID]
		if !ok || stage.Type != enum.StageTypeOpen {
			continue
		}
		if lead.LastUpdate.IsZero() {
			continue
		}
		if DaysStagnant(lead, now) >= StagnantAfterDays {
			out = append(out, lead)
		}
	}
	return out
}

// DaysStagnant returns the whole days elapsed since the lead's last update
func DaysStagnant(lead entity.Lead, now time.Time) int {
	if lead.LastUpdate.IsZero() || now.Before(lead.LastUpdate) {
		return 0
	}
	return int(now.Sub(lead.LastUpdate).Hours() / 24)
}

// SellerNotifications returns the acting seller's leads flagged by a
// manager. Managers get an empty list; they consume
// ManagerResponseNotifications instead.
func SellerNotifications(leads []entity.Lead, actor *entity.User) []entity.Lead {
	if actor.IsManager() {
		return nil
	}
	var out []entity.Lead
	for _, lead := range leads {
		if lead.OwnerID == actor.ID && lead.NotificationForSeller {
			out = append(out, lead)
		}
	}
	return out
}

// ManagerResponseNotifications returns the leads where a seller has replied
// to a note left by the acting manager.
func ManagerResponseNotifications(leads []entity.Lead, actor *entity.User) []entity.Lead {
	if !actor.IsManager() {
		return nil
	}
	var out []entity.Lead
	for _, lead := range leads {
		if lead.SellerHasViewedNotification &&
			lead.NotificationForManagerID != nil &&
			*lead.NotificationForManagerID == actor.ID {
			out = append(out, lead)
		}
	}
	return out
}

// VisibleLeads applies the dashboard visibility rule: managers see all
// leads, sellers only their own.
func VisibleLeads(leads []entity.Lead, actor *entity.User) []entity.Lead {
	if actor.IsManager() {
		return leads
	}
	var out []entity.Lead
	for _, lead := range leads {
		if lead.OwnerID == actor.ID {
			out = append(out, lead)
		}
	}
	return out
}
