package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/testutil"
)

// TestGetPortfolio tests portfolio view derivation from a stored snapshot.
//
// WHY: The portfolio view is the primary read surface. Grouping, summary
// arithmetic, and snapshot stamping must survive the full repository round
// trip, not just the pure calculator path.
func TestGetPortfolio(t *testing.T) {
	t.Run("groups rounds and sums the summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		project := testutil.NewProject().WithName("Solar Farm").Build(t, db)
		testutil.NewInvestment(project.ID).
			WithAmount(50000).
			WithCurrentValue(55000).
			Build(t, db)
		testutil.NewInvestment(project.ID).
			WithAmount(100000).
			WithCurrentValue(110000).
			WithPayout(4000, model.PayoutProcessed, nil).
			Build(t, db)

		view, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}

		if len(view.Investments) != 1 {
			t.Fatalf("Expected 1 group, got %d", len(view.Investments))
		}
		group := view.Investments[0]
		if group.TotalAmount != 150000 || group.TotalCurrentValue != 165000 {
			t.Errorf("Unexpected group totals: %+v", group.GroupedInvestment)
		}
		if group.InvestmentsCount != 2 {
			t.Errorf("Expected 2 rounds in group, got %d", group.InvestmentsCount)
		}
		if group.PercentReturn != 10 {
			t.Errorf("Expected 10%% return, got %v", group.PercentReturn)
		}
		if group.RealizedReturns != 4000 {
			t.Errorf("Expected 4000 realized, got %v", group.RealizedReturns)
		}

		if view.Summary.TotalInvested != 150000 {
			t.Errorf("Expected 150000 invested, got %v", view.Summary.TotalInvested)
		}
		if view.Summary.TotalProfit != 19000 {
			t.Errorf("Expected profit 19000, got %v", view.Summary.TotalProfit)
		}
	})

	t.Run("empty snapshot yields empty view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		view, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}

		if len(view.Investments) != 0 {
			t.Errorf("Expected no groups, got %d", len(view.Investments))
		}
		if view.Summary.TotalInvested != 0 || view.Summary.PercentReturn != 0 {
			t.Errorf("Expected zeroed summary, got %+v", view.Summary)
		}
		if view.FetchedAt != nil {
			t.Error("Expected no snapshot stamp before first refresh")
		}
	})

	t.Run("orphan investments are dropped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.NewInvestment("missing-project").WithAmount(5000).Build(t, db)

		view, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if len(view.Investments) != 0 {
			t.Errorf("Expected orphan to be dropped, got %d groups", len(view.Investments))
		}
	})

	t.Run("serves cached view on repeat reads", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		project := testutil.NewProject().Build(t, db)
		testutil.NewInvestment(project.ID).WithAmount(1000).Build(t, db)

		first, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}

		// Mutate the snapshot behind the cache; the cached view should win.
		testutil.NewInvestment(project.ID).WithAmount(9000).Build(t, db)

		second, err := svc.GetPortfolio(context.Background())
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if second.Summary.TotalInvested != first.Summary.TotalInvested {
			t.Errorf("Expected cached summary %v, got %v",
				first.Summary.TotalInvested, second.Summary.TotalInvested)
		}
	})
}

// TestGetUpcomingSchedule tests projection of term-end payouts.
//
// WHY: Groups without authoritative pending payouts still owe the investor a
// forecast. The projection uses the project terms and must disappear once a
// real pending payout exists.
func TestGetUpcomingSchedule(t *testing.T) {
	t.Run("synthesizes projection when no pending payouts exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		project := testutil.NewProject().WithTerms(10, 12).Build(t, db)
		testutil.NewInvestment(project.ID).
			WithAmount(10000).
			WithCurrentValue(10000).
			WithDate(time.Now().UTC().AddDate(0, -3, 0)).
			Build(t, db)

		schedule, err := svc.GetUpcomingSchedule(context.Background())
		if err != nil {
			t.Fatalf("GetUpcomingSchedule failed: %v", err)
		}

		if len(schedule) != 1 {
			t.Fatalf("Expected 1 projected entry, got %d", len(schedule))
		}
		if !schedule[0].Projected {
			t.Error("Expected entry to be flagged as projected")
		}
		if schedule[0].Amount != 11000 {
			t.Errorf("Expected projected amount 11000, got %v", schedule[0].Amount)
		}
	})

	t.Run("real pending payout suppresses projection", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		due := time.Now().UTC().AddDate(0, 2, 0)
		project := testutil.NewProject().WithTerms(10, 12).Build(t, db)
		testutil.NewInvestment(project.ID).
			WithAmount(10000).
			WithCurrentValue(10000).
			WithPayout(10800, model.PayoutPending, &due).
			Build(t, db)

		schedule, err := svc.GetUpcomingSchedule(context.Background())
		if err != nil {
			t.Fatalf("GetUpcomingSchedule failed: %v", err)
		}

		if len(schedule) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(schedule))
		}
		if schedule[0].Projected {
			t.Error("Expected authoritative payout, not a projection")
		}
		if schedule[0].Amount != 10800 {
			t.Errorf("Expected amount 10800, got %v", schedule[0].Amount)
		}
	})
}
