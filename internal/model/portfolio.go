package model

import "time"

// GroupedInvestment aggregates all of an investor's funding rounds on a
// single project. Payouts from every round are concatenated, except that
// pending payouts of fully exited rounds are suppressed; only their
// processed (historical) payouts remain visible.
type GroupedInvestment struct {
	ProjectID         string    `json:"projectId"`
	Project           *Project  `json:"project,omitempty"` // nil when the project could not be resolved
	TotalAmount       float64   `json:"totalAmount"`
	TotalCurrentValue float64   `json:"totalCurrentValue"`
	InvestmentsCount  int       `json:"investmentsCount"`
	Payouts           []Payout  `json:"payouts,omitempty"`
	LastInvestDate    time.Time `json:"lastInvestDate"`
}

// PortfolioSummary represents the investor's portfolio-wide position.
// TotalProfit combines the unrealized mark (current value minus invested)
// with realized returns already distributed as cash; the two are additive
// because distributed payouts are removed from current value server-side.
// All monetary values are rounded to two decimal places.
type PortfolioSummary struct {
	TotalInvested        float64 `json:"totalInvested"`
	TotalCurrentValue    float64 `json:"totalCurrentValue"`
	TotalRealizedReturns float64 `json:"totalRealizedReturns"`
	TotalProfit          float64 `json:"totalProfit"`
	PercentReturn        float64 `json:"percentReturn"`
	ProjectCount         int     `json:"projectCount"`
}

// UpcomingPayout is a future-looking payout entry. Projected marks entries
// synthesized from the investment date and project term when no real payout
// record exists; they must stay visually distinguishable from scheduled ones.
type UpcomingPayout struct {
	ProjectID string    `json:"projectId"`
	Amount    float64   `json:"amount"`
	DueDate   time.Time `json:"dueDate"`
	Projected bool      `json:"projected"`
}

// Snapshot records when a full upstream refresh last completed.
type Snapshot struct {
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetchedAt"`
}
