package model

import "time"

// ActivityKind classifies a normalized activity record.
type ActivityKind string

// Activity feed classifications. Records whose raw type is not recognized
// are kept as ActivityOther rather than dropped.
const (
	ActivityDeposit    ActivityKind = "deposit"
	ActivityWithdrawal ActivityKind = "withdrawal"
	ActivityInvestment ActivityKind = "investment"
	ActivityOther      ActivityKind = "other"
)

// ActivityRecord is a raw activity event before normalization. The three date
// fields mirror the inconsistent spellings the backend uses across record
// kinds; normalization picks the best available one.
type ActivityRecord struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Amount      *float64   `json:"amount,omitempty"`
	Status      string     `json:"status,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	RequestDate *time.Time `json:"requestDate,omitempty"`
}

// NormalizedActivity is a display-ready activity feed entry. HasAmount is
// false when the raw amount was absent, zero, or not a finite number; such
// entries render a placeholder, never 0.
type NormalizedActivity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Title     string       `json:"title"`
	Amount    float64      `json:"amount"`
	HasAmount bool         `json:"hasAmount"`
	Status    string       `json:"status,omitempty"`
	Date      *time.Time   `json:"date,omitempty"`
}
