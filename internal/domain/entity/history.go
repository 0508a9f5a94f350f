package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StatusChange is one entry in a lead's stage history
type StatusChange struct {
	Status uuid.UUID `json:"status"`
	Date   time.Time `json:"date"`
}

// TagChange is one entry in a lead's tag history
type TagChange struct {
	TagID uuid.UUID `json:"tag_id"`
	Date  time.Time `json:"date"`
}

// StatusHistory is the append-only sequence of stage transitions,
// stored as a JSONB column
type StatusHistory []StatusChange

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		h = StatusHistory{}
	}
	return json.Marshal(h)
}

func (h *StatusHistory) Scan(value interface{}) error {
	return scanJSON(value, h)
}

// TagHistory is the append-only sequence of tag changes, stored as JSONB
type TagHistory []TagChange

func (h TagHistory) Value() (driver.Value, error) {
	if h == nil {
		h = TagHistory{}
	}
	return json.Marshal(h)
}

func (h *TagHistory) Scan(value interface{}) error {
	return scanJSON(value, h)
}

// UUIDSlice is a JSONB-stored set of ids (tags, products of interest)
type UUIDSlice []uuid.UUID

func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		s = UUIDSlice{}
	}
	return json.Marshal(s)
}

func (s *UUIDSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// BillingHistory maps canonical "MM-YYYY" month keys to whether the client
// was invoiced that month. Absence of a key means "not recorded".
type BillingHistory map[string]bool

func (h BillingHistory) Value() (driver.Value, error) {
	if h == nil {
		h = BillingHistory{}
	}
	return json.Marshal(h)
}

func (h *BillingHistory) Scan(value interface{}) error {
	return scanJSON(value, h)
}

// Clone returns a copy safe to mutate without aliasing the original
func (h BillingHistory) Clone() BillingHistory {
	out := make(BillingHistory, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// MonthKey returns the canonical "MM-YYYY" billing key for a point in time
func MonthKey(t time.Time) string {
	return t.Format("01-2006")
}

// IsValidMonthKey reports whether s is a canonical "MM-YYYY" key
func IsValidMonthKey(s string) bool {
	_, err := time.Parse("01-2006", s)
	return err == nil && len(s) == 7
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("unsupported column type for JSON scan")
}
