package workflow

// Trigger represents an action that can cause a status transition.
type Trigger string

const (
	// TriggerSend moves a draft invoice out the door.
	TriggerSend Trigger = "SEND"

	// TriggerRecordPayment records a payment; the target status depends on
	// whether the payment clears the balance.
	TriggerRecordPayment Trigger = "RECORD_PAYMENT"

	// TriggerCancel voids a non-terminal invoice.
	TriggerCancel Trigger = "CANCEL"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
