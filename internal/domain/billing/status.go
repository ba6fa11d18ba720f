package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is an invoice lifecycle status. Overdue is special: it is derived
// at read time from the due date and never stored.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSent          Status = "sent"
	StatusPaid          Status = "paid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusOverdue       Status = "overdue"
	StatusCancelled     Status = "cancelled"
)

var storedStatuses = map[Status]bool{
	StatusDraft:         true,
	StatusSent:          true,
	StatusPaid:          true,
	StatusPartiallyPaid: true,
	StatusCancelled:     true,
}

var terminalStatuses = map[Status]bool{
	StatusPaid:      true,
	StatusCancelled: true,
}

// IsValid returns true if the status may be persisted. Overdue is not a
// stored status and therefore not valid here.
func (s Status) IsValid() bool {
	return storedStatuses[s]
}

// IsTerminal returns true for statuses that allow no further transitions.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsOverdue reports whether an invoice should be flagged overdue: the due
// date is set and in the past, and the invoice is neither paid nor
// cancelled. This is the single overdue predicate for the whole system;
// it is recomputed on every read, never trusted from storage.
func IsOverdue(s Status, dueDate, now time.Time) bool {
	if dueDate.IsZero() {
		return false
	}
	if s == StatusPaid || s == StatusCancelled {
		return false
	}
	return dueDate.Before(now)
}

// EffectiveStatus returns the status to display: the stored status, or
// overdue when IsOverdue holds.
func EffectiveStatus(s Status, dueDate, now time.Time) Status {
	if IsOverdue(s, dueDate, now) {
		return StatusOverdue
	}
	return s
}

// HasBalance reports whether a payment action should be offered.
func HasBalance(amountDue decimal.Decimal) bool {
	return amountDue.IsPositive()
}

// Badge describes how a status renders: a label and two visual accents.
type Badge struct {
	Label      string `json:"label"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

var statusBadges = map[Status]Badge{
	StatusDraft:         {Label: "Draft", Accent: "#6B7280", Background: "#F3F4F6"},
	StatusSent:          {Label: "Sent", Accent: "#6366F1", Background: "#EEF2FF"},
	StatusPaid:          {Label: "Paid", Accent: "#10B981", Background: "#ECFDF5"},
	StatusPartiallyPaid: {Label: "Partially Paid", Accent: "#F59E0B", Background: "#FFFBEB"},
	StatusOverdue:       {Label: "Overdue", Accent: "#EF4444", Background: "#FEF2F2"},
	StatusCancelled:     {Label: "Cancelled", Accent: "#9CA3AF", Background: "#F9FAFB"},
}

// BadgeFor returns the display badge for a status. Unknown statuses fall
// back to the draft badge.
func BadgeFor(s Status) Badge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return statusBadges[StatusDraft]
}
