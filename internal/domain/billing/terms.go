package billing

import "time"

// Terms is a named payment-terms policy determining the gap between the
// issue date and the due date.
type Terms string

const (
	TermsDueOnReceipt Terms = "due_on_receipt"
	TermsNet7         Terms = "net_7"
	TermsNet15        Terms = "net_15"
	TermsNet30        Terms = "net_30"
	TermsNet60        Terms = "net_60"
	TermsCustom       Terms = "custom"
)

var termDays = map[Terms]int{
	TermsDueOnReceipt: 0,
	TermsNet7:         7,
	TermsNet15:        15,
	TermsNet30:        30,
	TermsNet60:        60,
}

// IsValid returns true for a known terms value.
func (t Terms) IsValid() bool {
	if t == TermsCustom {
		return true
	}
	_, ok := termDays[t]
	return ok
}

// Days returns the calendar-day offset for the terms. The second return is
// false for custom terms, which carry no automatic offset.
func (t Terms) Days() (int, bool) {
	d, ok := termDays[t]
	return d, ok
}

// String returns the string representation of the terms.
func (t Terms) String() string {
	return string(t)
}

// ResolveDueDate maps a terms selection and an issue date to a due date.
// Custom terms leave the current due date untouched (the field is edited
// manually), and a zero issue date makes the resolver a no-op. Offsets are
// calendar days, not business days.
func ResolveDueDate(t Terms, issueDate, currentDue time.Time) time.Time {
	days, ok := t.Days()
	if !ok || issueDate.IsZero() {
		return currentDue
	}
	return issueDate.AddDate(0, 0, days)
}
