package ledger_test

import (
	"errors"
	"math"
	"testing"

	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
)

// TestAvailableBalance tests owner withdrawal eligibility math.
//
// WHY: This consolidates balance logic that was previously duplicated with
// subtle inconsistencies, including a double-count of approved requests on
// one path. The two scenarios below pin the intended behavior of both the
// authoritative and fallback paths.
func TestAvailableBalance(t *testing.T) {
	policy := ledger.DefaultPolicy()

	t.Run("fallback path subtracts pending and approved", func(t *testing.T) {
		project := model.Project{ID: "p1", RaisedAmount: 1000000}
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p1", Amount: 50000, Status: model.WithdrawalPending},
		}

		// netAfterFee = 980000; available = 980000 - 50000
		if got := ledger.AvailableBalance(project, requests, policy); got != 930000 {
			t.Errorf("Expected 930000, got %v", got)
		}
	})

	t.Run("released ledger path does not re-subtract approved", func(t *testing.T) {
		released := 200000.0
		project := model.Project{ID: "p1", RaisedAmount: 1000000, AmountReleased: &released}
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p1", Amount: 50000, Status: model.WithdrawalPending},
			{ProjectRef: "p1", Amount: 200000, Status: model.WithdrawalApproved},
		}

		// available = 980000 - 200000 - 50000; the approved 200000 is already
		// inside amountReleased and must not be counted twice.
		if got := ledger.AvailableBalance(project, requests, policy); got != 730000 {
			t.Errorf("Expected 730000, got %v", got)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		released := 2000000.0
		project := model.Project{ID: "p1", RaisedAmount: 1000000, AmountReleased: &released}

		if got := ledger.AvailableBalance(project, nil, policy); got != 0 {
			t.Errorf("Expected floor at 0, got %v", got)
		}
	})

	t.Run("matches requests by alternate identifier", func(t *testing.T) {
		project := model.Project{ID: "p1", AltID: "6f1e8f2a-1111-2222-3333-444455556666", RaisedAmount: 100000}
		requests := []model.WithdrawalRequest{
			{ProjectRef: "6f1e8f2a-1111-2222-3333-444455556666", Amount: 10000, Status: model.WithdrawalPending},
			{ProjectRef: "other-project", Amount: 99999, Status: model.WithdrawalPending},
		}

		// 98000 - 10000; the other project's request is ignored
		if got := ledger.AvailableBalance(project, requests, policy); got != 88000 {
			t.Errorf("Expected 88000, got %v", got)
		}
	})

	t.Run("rejected requests never reserve balance", func(t *testing.T) {
		project := model.Project{ID: "p1", RaisedAmount: 100000}
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p1", Amount: 40000, Status: model.WithdrawalRejected},
		}

		if got := ledger.AvailableBalance(project, requests, policy); got != 98000 {
			t.Errorf("Expected 98000, got %v", got)
		}
	})

	t.Run("fee rate is policy, not a constant", func(t *testing.T) {
		project := model.Project{ID: "p1", RaisedAmount: 100000}
		custom := ledger.Policy{FeeRate: 0.05}

		if got := ledger.AvailableBalance(project, nil, custom); got != 95000 {
			t.Errorf("Expected 95000 under 5%% fee, got %v", got)
		}
	})
}

// TestValidateSubmission tests the fail-fast submission rules.
//
// WHY: Callers discriminate the rejection reason to show the right message,
// and the one-pending-request rule is a business invariant, not a UI
// nicety. Each rule must fire in order and abort without side effects.
func TestValidateSubmission(t *testing.T) {
	policy := ledger.DefaultPolicy()
	funded := model.Project{ID: "p1", RaisedAmount: 1000000, Status: model.ProjectFunded}

	tests := []struct {
		name     string
		project  *model.Project
		requests []model.WithdrawalRequest
		amount   float64
		expected ledger.RejectionReason
	}{
		{
			name:     "missing project",
			project:  nil,
			amount:   100,
			expected: ledger.ReasonMissingProject,
		},
		{
			name:     "project not funded",
			project:  &model.Project{ID: "p1", RaisedAmount: 1000000, Status: model.ProjectActive},
			amount:   100,
			expected: ledger.ReasonProjectNotFunded,
		},
		{
			name:    "pending request already exists",
			project: &funded,
			requests: []model.WithdrawalRequest{
				{ProjectRef: "p1", Amount: 1, Status: model.WithdrawalPending},
			},
			amount:   100,
			expected: ledger.ReasonPendingRequestExists,
		},
		{
			name:     "zero amount",
			project:  &funded,
			amount:   0,
			expected: ledger.ReasonInvalidAmount,
		},
		{
			name:     "negative amount",
			project:  &funded,
			amount:   -5,
			expected: ledger.ReasonInvalidAmount,
		},
		{
			name:     "NaN amount",
			project:  &funded,
			amount:   math.NaN(),
			expected: ledger.ReasonInvalidAmount,
		},
		{
			name:     "infinite amount",
			project:  &funded,
			amount:   math.Inf(1),
			expected: ledger.ReasonInvalidAmount,
		},
		{
			name:     "amount exceeds available balance",
			project:  &funded,
			amount:   980001,
			expected: ledger.ReasonExceedsBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ledger.ValidateSubmission(tt.project, tt.requests, tt.amount, policy)
			if err == nil {
				t.Fatal("Expected rejection, got nil")
			}
			var rejection *ledger.RejectionError
			if !errors.As(err, &rejection) {
				t.Fatalf("Expected *RejectionError, got %T", err)
			}
			if rejection.Reason != tt.expected {
				t.Errorf("Expected reason %s, got %s", tt.expected, rejection.Reason)
			}
		})
	}

	t.Run("below policy minimum", func(t *testing.T) {
		strict := ledger.Policy{FeeRate: 0.02, MinimumAmount: 1000}

		err := ledger.ValidateSubmission(&funded, nil, 500, strict)

		var rejection *ledger.RejectionError
		if !errors.As(err, &rejection) || rejection.Reason != ledger.ReasonBelowMinimum {
			t.Errorf("Expected BelowMinimum, got %v", err)
		}
	})

	t.Run("valid submission passes", func(t *testing.T) {
		if err := ledger.ValidateSubmission(&funded, nil, 100000, policy); err != nil {
			t.Errorf("Expected nil, got %v", err)
		}
	})
}

// TestHasPendingRequest verifies the single-outstanding-request gate.
func TestHasPendingRequest(t *testing.T) {
	project := model.Project{ID: "p1"}

	t.Run("true with a pending request", func(t *testing.T) {
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p1", Status: model.WithdrawalPending},
		}
		if !ledger.HasPendingRequest(project, requests) {
			t.Error("Expected pending request to be detected")
		}
	})

	t.Run("false with only settled requests", func(t *testing.T) {
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p1", Status: model.WithdrawalApproved},
			{ProjectRef: "p1", Status: model.WithdrawalRejected},
		}
		if ledger.HasPendingRequest(project, requests) {
			t.Error("Expected no pending request")
		}
	})

	t.Run("ignores other projects", func(t *testing.T) {
		requests := []model.WithdrawalRequest{
			{ProjectRef: "p2", Status: model.WithdrawalPending},
		}
		if ledger.HasPendingRequest(project, requests) {
			t.Error("Expected other project's request to be ignored")
		}
	})
}
