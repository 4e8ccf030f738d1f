package model

import "time"

// PayoutStatus describes the processing state of a scheduled payout.
type PayoutStatus string

// Payout statuses. Only processed payouts count toward realized returns;
// only pending payouts with a valid future due date count toward the
// next-payout projection.
const (
	PayoutPending   PayoutStatus = "pending"
	PayoutProcessed PayoutStatus = "processed"
	PayoutFailed    PayoutStatus = "failed"
)

// Payout represents a single scheduled or completed distribution on an
// investment. DueDate is nil when the backend supplied no date or the date
// could not be parsed.
type Payout struct {
	ID      string       `json:"id"`
	Amount  float64      `json:"amount"`
	DueDate *time.Time   `json:"dueDate,omitempty"`
	Status  PayoutStatus `json:"status"`
}

// Investment represents a single funding round by an investor into a project.
// An investor may hold several Investment records against the same project;
// they are grouped by project before display.
//
// CurrentValue is the server-computed mark of the position. It is nil when
// the backend did not report one, in which case the principal amount is used.
// A reported value of exactly zero means the position has been fully exited.
type Investment struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	Project      *Project  `json:"project,omitempty"` // embedded copy, takes precedence over lookups
	Amount       float64   `json:"amount"`
	CurrentValue *float64  `json:"currentValue,omitempty"`
	Date         time.Time `json:"date"`
	Payouts      []Payout  `json:"payouts,omitempty"`
}

// EffectiveValue returns the current value of the investment, falling back
// to the contributed principal when the backend reported no mark.
func (i Investment) EffectiveValue() float64 {
	if i.CurrentValue == nil {
		return i.Amount
	}
	return *i.CurrentValue
}

// Exited reports whether the position has been fully paid out and closed.
func (i Investment) Exited() bool {
	return i.CurrentValue != nil && *i.CurrentValue == 0
}
