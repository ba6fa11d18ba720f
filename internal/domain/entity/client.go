// Package entity defines the persistent records of the client portal:
// clients, projects, tasks, invoices and the activity feed.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a billable customer owned by a user.
type Client struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	AvatarColor string    `json:"avatar_color"`
	CreatedAt   time.Time `json:"created_at"`

	// Aggregates computed per read, not stored.
	ProjectCount int             `json:"project_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DefaultAvatarColor is assigned when a client is created without one.
const DefaultAvatarColor = "#10B981"
