package ledger_test

import (
	"testing"

	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
)

// TestPercentReturn tests the percent-return guard against division by zero.
//
// WHY: Grouped positions with zero principal occur in practice (bonus
// allocations, data gaps). The calculator must return 0, never NaN or Inf.
func TestPercentReturn(t *testing.T) {
	tests := []struct {
		name     string
		group    model.GroupedInvestment
		expected float64
	}{
		{
			name:     "zero principal returns zero",
			group:    model.GroupedInvestment{TotalAmount: 0, TotalCurrentValue: 500},
			expected: 0,
		},
		{
			name:     "negative principal returns zero",
			group:    model.GroupedInvestment{TotalAmount: -10, TotalCurrentValue: 500},
			expected: 0,
		},
		{
			name:     "ten percent gain",
			group:    model.GroupedInvestment{TotalAmount: 150000, TotalCurrentValue: 165000},
			expected: 10,
		},
		{
			name:     "loss is negative",
			group:    model.GroupedInvestment{TotalAmount: 200, TotalCurrentValue: 150},
			expected: -25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.PercentReturn(tt.group); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestRealizedReturns verifies that only processed payouts count.
func TestRealizedReturns(t *testing.T) {
	g := model.GroupedInvestment{
		Payouts: []model.Payout{
			{Amount: 100, Status: model.PayoutProcessed},
			{Amount: 50, Status: model.PayoutPending},
			{Amount: 25, Status: model.PayoutFailed},
			{Amount: 200, Status: model.PayoutProcessed},
		},
	}

	if got := ledger.RealizedReturns(g); got != 300 {
		t.Errorf("Expected 300 from processed payouts only, got %v", got)
	}
}

// TestSummarize tests the portfolio-wide profit combination.
//
// WHY: Total profit intentionally adds realized returns on top of the
// unrealized mark; a regression here misstates the investor's position.
func TestSummarize(t *testing.T) {
	t.Run("combines unrealized mark with realized cash", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{
				TotalAmount:       1000,
				TotalCurrentValue: 1100,
				Payouts: []model.Payout{
					{Amount: 40, Status: model.PayoutProcessed},
				},
			},
			{
				TotalAmount:       500,
				TotalCurrentValue: 450,
			},
		}

		summary := ledger.Summarize(groups)

		if summary.TotalInvested != 1500 {
			t.Errorf("Expected totalInvested 1500, got %v", summary.TotalInvested)
		}
		if summary.TotalCurrentValue != 1550 {
			t.Errorf("Expected totalCurrentValue 1550, got %v", summary.TotalCurrentValue)
		}
		if summary.TotalRealizedReturns != 40 {
			t.Errorf("Expected totalRealizedReturns 40, got %v", summary.TotalRealizedReturns)
		}
		// 1550 - 1500 + 40
		if summary.TotalProfit != 90 {
			t.Errorf("Expected totalProfit 90, got %v", summary.TotalProfit)
		}
		if summary.ProjectCount != 2 {
			t.Errorf("Expected projectCount 2, got %d", summary.ProjectCount)
		}
	})

	t.Run("empty portfolio yields zeroes, not NaN", func(t *testing.T) {
		summary := ledger.Summarize(nil)

		if summary.PercentReturn != 0 || summary.TotalProfit != 0 {
			t.Errorf("Expected zero summary, got %+v", summary)
		}
	})

	t.Run("rounds monetary values to two decimals", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{TotalAmount: 100.004, TotalCurrentValue: 100.006},
		}

		summary := ledger.Summarize(groups)

		if summary.TotalInvested != 100 {
			t.Errorf("Expected rounded totalInvested 100, got %v", summary.TotalInvested)
		}
		if summary.TotalCurrentValue != 100.01 {
			t.Errorf("Expected rounded totalCurrentValue 100.01, got %v", summary.TotalCurrentValue)
		}
	})
}

// TestNextUpcomingPayout tests the earliest-future-payout scan.
//
// WHY: The "next payout" card is the most visible derived number on the
// dashboard; it must ignore past, processed, and dateless payouts and break
// ties deterministically.
func TestNextUpcomingPayout(t *testing.T) {
	now := day(2026, 1, 1)
	soon := day(2026, 2, 1)
	later := day(2026, 5, 1)
	past := day(2025, 12, 1)

	t.Run("returns the earliest pending future payout", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{ProjectID: "p1", Payouts: []model.Payout{
				{ID: "a", Amount: 10, DueDate: &later, Status: model.PayoutPending},
			}},
			{ProjectID: "p2", Payouts: []model.Payout{
				{ID: "b", Amount: 20, DueDate: &soon, Status: model.PayoutPending},
				{ID: "c", Amount: 30, DueDate: &past, Status: model.PayoutPending},
			}},
		}

		next := ledger.NextUpcomingPayout(groups, now)

		if next == nil {
			t.Fatal("Expected a payout, got nil")
		}
		if next.ProjectID != "p2" || next.Amount != 20 {
			t.Errorf("Expected payout b from p2, got %+v", next)
		}
	})

	t.Run("returns nil when nothing is due", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{ProjectID: "p1", Payouts: []model.Payout{
				{Amount: 10, DueDate: &past, Status: model.PayoutPending},
				{Amount: 20, DueDate: &soon, Status: model.PayoutProcessed},
				{Amount: 30, Status: model.PayoutPending}, // no due date
			}},
		}

		if next := ledger.NextUpcomingPayout(groups, now); next != nil {
			t.Errorf("Expected nil, got %+v", next)
		}
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{ProjectID: "p1", Payouts: []model.Payout{
				{ID: "first", Amount: 10, DueDate: &soon, Status: model.PayoutPending},
			}},
			{ProjectID: "p2", Payouts: []model.Payout{
				{ID: "second", Amount: 20, DueDate: &soon, Status: model.PayoutPending},
			}},
		}

		next := ledger.NextUpcomingPayout(groups, now)

		if next == nil || next.ProjectID != "p1" {
			t.Errorf("Expected tie broken toward first encountered, got %+v", next)
		}
	})
}

// TestUpcomingSchedule tests projected-payout synthesis.
//
// WHY: Groups without any real payout record still show a maturity
// projection; it must be flagged as projected and never appear for exited
// positions.
func TestUpcomingSchedule(t *testing.T) {
	now := day(2026, 1, 1)

	t.Run("synthesizes a projected payout at term end", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{
				ProjectID:         "p1",
				Project:           &model.Project{ID: "p1", ROI: 20, DurationMonths: 12},
				TotalAmount:       1000,
				TotalCurrentValue: 1000,
				LastInvestDate:    day(2025, 6, 15),
			},
		}

		schedule := ledger.UpcomingSchedule(groups, now)

		if len(schedule) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(schedule))
		}
		entry := schedule[0]
		if !entry.Projected {
			t.Error("Expected entry to be flagged projected")
		}
		if entry.Amount != 1200 {
			t.Errorf("Expected projected amount 1200, got %v", entry.Amount)
		}
		if !entry.DueDate.Equal(day(2026, 6, 15)) {
			t.Errorf("Expected due date 2026-06-15, got %v", entry.DueDate)
		}
	})

	t.Run("real pending payouts win over projection", func(t *testing.T) {
		due := day(2026, 3, 1)
		groups := []model.GroupedInvestment{
			{
				ProjectID:         "p1",
				Project:           &model.Project{ID: "p1", ROI: 20, DurationMonths: 12},
				TotalAmount:       1000,
				TotalCurrentValue: 1000,
				LastInvestDate:    day(2025, 6, 15),
				Payouts: []model.Payout{
					{Amount: 100, DueDate: &due, Status: model.PayoutPending},
				},
			},
		}

		schedule := ledger.UpcomingSchedule(groups, now)

		if len(schedule) != 1 || schedule[0].Projected {
			t.Errorf("Expected only the real payout, got %+v", schedule)
		}
	})

	t.Run("no projection for exited groups", func(t *testing.T) {
		groups := []model.GroupedInvestment{
			{
				ProjectID:         "p1",
				Project:           &model.Project{ID: "p1", ROI: 20, DurationMonths: 12},
				TotalAmount:       1000,
				TotalCurrentValue: 0,
				LastInvestDate:    day(2025, 6, 15),
			},
		}

		if schedule := ledger.UpcomingSchedule(groups, now); len(schedule) != 0 {
			t.Errorf("Expected no entries for exited group, got %+v", schedule)
		}
	})
}
