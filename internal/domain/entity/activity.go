package entity

import "time"

// Activity action constants
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionSent      = "sent"
	ActionPaid      = "paid"
	ActionCancelled = "cancelled"
)

// Activity is one entry in the per-user audit feed, written on every
// mutation of a client, project, task or invoice.
type Activity struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityName string    `json:"entity_name"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
