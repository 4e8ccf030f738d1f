package model

import "time"

// TransactionType describes the kind of wallet movement.
type TransactionType string

// Wallet transaction types as reported by the marketplace backend.
const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionInvestment TransactionType = "investment"
)

// TransactionStatus describes the settlement state of a wallet transaction.
type TransactionStatus string

// Wallet transaction statuses.
const (
	TransactionSuccess TransactionStatus = "success"
	TransactionPending TransactionStatus = "pending"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction represents a wallet movement (deposit, withdrawal, or
// investment) held by the marketplace backend. Date is nil when the backend
// supplied no parsable timestamp; Amount is nil when no usable amount was
// reported, which is distinct from an explicit zero.
type Transaction struct {
	ID        string            `json:"id"`
	Type      TransactionType   `json:"type"`
	Amount    *float64          `json:"amount,omitempty"`
	Status    TransactionStatus `json:"status"`
	Date      *time.Time        `json:"date,omitempty"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}
