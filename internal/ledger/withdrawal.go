package ledger

import (
	"fmt"

	"github.com/loopital/ledger-backend/internal/model"
)

// Policy carries the platform constants that withdrawal eligibility depends
// on. The fee is a flat percentage baked into the raised pool; it is
// configuration, never a hard-coded literal at call sites.
type Policy struct {
	FeeRate       float64 // platform fee as a fraction of the raised amount
	MinimumAmount float64 // smallest permitted withdrawal; 0 disables the check
}

// DefaultPolicy returns the platform's standard withdrawal policy:
// a flat 2% fee and no minimum amount.
func DefaultPolicy() Policy {
	return Policy{FeeRate: 0.02}
}

// NetAfterFee returns the raised amount minus the platform fee. This is the
// base against which withdrawal availability is computed.
func (p Policy) NetAfterFee(raised float64) float64 {
	return raised * (1 - p.FeeRate)
}

// RejectionReason discriminates why a withdrawal submission was refused so
// callers can show the right message.
type RejectionReason string

// Withdrawal submission rejection reasons.
const (
	ReasonProjectNotFunded     RejectionReason = "ProjectNotFunded"
	ReasonPendingRequestExists RejectionReason = "PendingRequestExists"
	ReasonInvalidAmount        RejectionReason = "InvalidAmount"
	ReasonBelowMinimum         RejectionReason = "BelowMinimum"
	ReasonExceedsBalance       RejectionReason = "ExceedsBalance"
	ReasonMissingProject       RejectionReason = "MissingProject"
)

// RejectionError reports a failed withdrawal submission validation. It is a
// business rejection, not a system failure; handlers map it to a client
// error with the reason attached.
type RejectionError struct {
	Reason RejectionReason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("withdrawal rejected: %s", e.Reason)
}

// reject is a shorthand constructor used by ValidateSubmission.
func reject(reason RejectionReason) error {
	return &RejectionError{Reason: reason}
}

// RequestsFor returns the withdrawal requests that reference the given
// project, matching on either its primary id or its alternate UUID
// identifier. Requests for other projects are ignored.
func RequestsFor(project model.Project, requests []model.WithdrawalRequest) []model.WithdrawalRequest {
	var matched []model.WithdrawalRequest
	for _, r := range requests {
		if project.Matches(r.ProjectRef) {
			matched = append(matched, r)
		}
	}
	return matched
}

// HasPendingRequest reports whether the project already has an outstanding
// pending withdrawal request. A project may hold at most one at a time;
// this gates submission of a new request.
func HasPendingRequest(project model.Project, requests []model.WithdrawalRequest) bool {
	for _, r := range RequestsFor(project, requests) {
		if r.Status == model.WithdrawalPending {
			return true
		}
	}
	return false
}

// AvailableBalance computes how much of the raised pool the project owner
// can still withdraw.
//
// When the backend reports AmountReleased, that ledger is authoritative:
//
//	available = max(0, netAfterFee − amountReleased − Σ pending)
//
// Approved requests are already reflected in AmountReleased and must not be
// subtracted again; doing so double-counts them. Without AmountReleased the
// fallback subtracts both pending and approved requests from the net pool.
// The result is floored at zero for all inputs.
func AvailableBalance(project model.Project, requests []model.WithdrawalRequest, policy Policy) float64 {
	net := policy.NetAfterFee(project.RaisedAmount)

	var pending, approved float64
	for _, r := range RequestsFor(project, requests) {
		switch r.Status {
		case model.WithdrawalPending:
			pending += r.Amount
		case model.WithdrawalApproved:
			approved += r.Amount
		}
	}

	if project.AmountReleased != nil {
		return max(0, net-*project.AmountReleased-pending)
	}
	return max(0, net-pending-approved)
}

// ValidateSubmission checks a new withdrawal request against the business
// rules, failing fast on the first violation:
//
//  1. the project must be funded
//  2. no pending request may already exist
//  3. the amount must be a finite positive number
//  4. the amount must meet the policy minimum, when one is set
//  5. the amount must not exceed the available balance
//
// A missing project reference short-circuits with ReasonMissingProject,
// since none of the other rules are defined without one. A nil return means
// the submission may proceed; any error is a *RejectionError and the caller
// must abort without side effects.
func ValidateSubmission(project *model.Project, requests []model.WithdrawalRequest, amount float64, policy Policy) error {
	if project == nil || project.ID == "" {
		return reject(ReasonMissingProject)
	}
	if project.Status != model.ProjectFunded {
		return reject(ReasonProjectNotFunded)
	}
	if HasPendingRequest(*project, requests) {
		return reject(ReasonPendingRequestExists)
	}
	if !finite(amount) || amount <= 0 {
		return reject(ReasonInvalidAmount)
	}
	if policy.MinimumAmount > 0 && amount < policy.MinimumAmount {
		return reject(ReasonBelowMinimum)
	}
	if amount > AvailableBalance(*project, requests, policy) {
		return reject(ReasonExceedsBalance)
	}
	return nil
}
