package model

import "time"

// WithdrawalStatus describes the review state of an owner withdrawal request.
type WithdrawalStatus string

// Withdrawal request statuses. Pending requests reserve balance; approved
// requests are assumed to already be reflected in the project's
// AmountReleased ledger when that ledger is present.
const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest represents a project owner's request to release a tranche
// of raised funds. ProjectRef may carry either the project's primary ID or
// its alternate UUID identifier.
type WithdrawalRequest struct {
	ID          string           `json:"id"`
	ProjectRef  string           `json:"projectRef"`
	Amount      float64          `json:"amount"`
	Status      WithdrawalStatus `json:"status"`
	Phase       int              `json:"phase"`
	RequestDate *time.Time       `json:"requestDate,omitempty"`
}
