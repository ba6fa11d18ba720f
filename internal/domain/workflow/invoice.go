package workflow

import (
	"context"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

// NewInvoiceMachine builds the invoice lifecycle machine:
//
//	draft          --SEND-->            sent
//	sent           --RECORD_PAYMENT-->  paid            (balance cleared)
//	sent           --RECORD_PAYMENT-->  partially_paid
//	partially_paid --RECORD_PAYMENT-->  paid            (balance cleared)
//	partially_paid --RECORD_PAYMENT-->  partially_paid
//	draft|sent|partially_paid --CANCEL--> cancelled
//
// paid and cancelled are terminal. balanceCleared reports whether the
// payment being recorded brings the amount due to zero; it is evaluated
// when RECORD_PAYMENT fires.
func NewInvoiceMachine(initial billing.Status, balanceCleared func() bool) StateMachine {
	cleared := func(ctx context.Context) bool { return balanceCleared() }

	b := NewBuilder()

	b.Configure(billing.StatusDraft).
		Permit(TriggerSend, billing.StatusSent).
		Permit(TriggerCancel, billing.StatusCancelled)

	b.Configure(billing.StatusSent).
		PermitIf(TriggerRecordPayment, billing.StatusPaid, cleared).
		Permit(TriggerRecordPayment, billing.StatusPartiallyPaid).
		Permit(TriggerCancel, billing.StatusCancelled)

	b.Configure(billing.StatusPartiallyPaid).
		PermitIf(TriggerRecordPayment, billing.StatusPaid, cleared).
		Permit(TriggerRecordPayment, billing.StatusPartiallyPaid).
		Permit(TriggerCancel, billing.StatusCancelled)

	return b.Build(initial)
}
