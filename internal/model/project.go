package model

// ProjectStatus describes where a fundraising campaign is in its lifecycle.
type ProjectStatus string

// Project lifecycle statuses. Only funded projects are eligible for
// owner withdrawals.
const (
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectFunded    ProjectStatus = "funded"
	ProjectCompleted ProjectStatus = "completed"
	ProjectRejected  ProjectStatus = "rejected"
)

// Project represents a fundraising campaign as held by the marketplace backend.
// AmountReleased is the authoritative ledger of funds already paid out to the
// project owner; it is nil when the backend did not report it, which switches
// withdrawal availability to the fallback calculation.
type Project struct {
	ID             string        `json:"id"`
	AltID          string        `json:"altId,omitempty"` // UUID-like alternate identifier
	Name           string        `json:"name"`
	RaisedAmount   float64       `json:"raisedAmount"`
	TargetAmount   float64       `json:"targetAmount"`
	AmountReleased *float64      `json:"amountReleased,omitempty"`
	Status         ProjectStatus `json:"status"`
	CurrentPhase   int           `json:"currentPhase"`
	ROI            float64       `json:"roi"`            // expected return, percent
	DurationMonths int           `json:"durationMonths"` // investment term
}

// FundedPercent returns the raised amount as a percentage of the target.
// A non-positive target is treated as 1 so the division is always defined.
func (p Project) FundedPercent() float64 {
	target := p.TargetAmount
	if target <= 0 {
		target = 1
	}
	return p.RaisedAmount / target * 100
}

// Matches reports whether ref identifies this project by either its primary
// ID or its alternate UUID identifier.
func (p Project) Matches(ref string) bool {
	if ref == "" {
		return false
	}
	return ref == p.ID || (p.AltID != "" && ref == p.AltID)
}
