package service

import (
	"errors"
	"fmt"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

var (
	// ErrNotFound is returned when a record does not exist or is not
	// visible to the requesting owner
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails validation before any write
	ErrValidation = errors.New("validation failed")

	// ErrSyncInProgress is returned when a save is attempted while another
	// save for the same invoice is still applying its plan
	ErrSyncInProgress = errors.New("item synchronization already in progress")
)

// validationError wraps ErrValidation with a human-readable reason.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// SyncError reports a partially applied item synchronization plan: the
// operations that completed before the failure and the ones that did not
// run. Applied operations are not rolled back; the invoice totals are
// recomputed from whatever state the items ended up in.
type SyncError struct {
	Applied []billing.Op
	Failed  []billing.Op
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("item sync failed after %d of %d operations: %v",
		len(e.Applied), len(e.Applied)+len(e.Failed), e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
