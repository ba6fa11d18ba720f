package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status constants
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusReview     = "review"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview,
		ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// Project represents a client engagement with budget and task tracking.
type Project struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"-"`
	ClientID    int64           `json:"client_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	Progress    int             `json:"progress"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Enrichment for API responses.
	ClientName string  `json:"client_name,omitempty"`
	Tasks      []*Task `json:"tasks"`
}
