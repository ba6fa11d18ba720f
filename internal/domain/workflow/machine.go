// Package workflow provides the invoice lifecycle state machine. Stored
// statuses and the transitions between them live here; the derived overdue
// display state is handled by the billing package and never appears as a
// machine state.
package workflow

import (
	"context"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

// StateMachine tracks the current invoice status and validates transitions.
type StateMachine interface {
	// State returns the current status
	State() billing.Status

	// CanFire returns true if the trigger is permitted in the current status
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new status if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can be fired in the current status
	PermittedTriggers() []Trigger
}
