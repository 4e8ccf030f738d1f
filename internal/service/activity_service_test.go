package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/testutil"
)

// TestGetActivityFeed tests the merged activity feed.
//
// WHY: The feed combines wallet transactions and withdrawal requests, each
// with a different date field. The merged list must sort newest first across
// both sources, with dateless records at the end.
func TestGetActivityFeed(t *testing.T) {
	t.Run("merges and sorts both sources", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db)

		testutil.NewTransaction(model.TransactionDeposit).
			WithDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.NewWithdrawalRequest(testutil.MakeID()).
			WithRequestDate(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.NewTransaction(model.TransactionInvestment).
			WithDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		feed, err := svc.GetActivityFeed()
		if err != nil {
			t.Fatalf("GetActivityFeed failed: %v", err)
		}

		if len(feed) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(feed))
		}
		if feed[0].Kind != model.ActivityWithdrawal {
			t.Errorf("Expected withdrawal first, got %s", feed[0].Kind)
		}
		if feed[1].Kind != model.ActivityInvestment || feed[2].Kind != model.ActivityDeposit {
			t.Errorf("Unexpected feed order: %s, %s", feed[1].Kind, feed[2].Kind)
		}
	})

	t.Run("dateless records sort last", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db)

		dateless := testutil.NewTransaction(model.TransactionDeposit).
			WithoutDate().
			Build(t, db)
		testutil.NewTransaction(model.TransactionDeposit).
			WithDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		feed, err := svc.GetActivityFeed()
		if err != nil {
			t.Fatalf("GetActivityFeed failed: %v", err)
		}

		if len(feed) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(feed))
		}
		if feed[1].ID != dateless.ID {
			t.Error("Expected dateless entry to sort last")
		}
		if feed[1].Date != nil {
			t.Error("Expected dateless entry to keep a nil date")
		}
	})

	t.Run("absent amounts stay absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db)

		testutil.NewTransaction(model.TransactionDeposit).
			WithoutAmount().
			Build(t, db)

		feed, err := svc.GetActivityFeed()
		if err != nil {
			t.Fatalf("GetActivityFeed failed: %v", err)
		}
		if feed[0].HasAmount {
			t.Error("Expected missing amount to be reported as absent, not 0")
		}
	})
}

// TestExportActivityCSV tests the CSV export of the feed.
//
// WHY: Exports feed downstream bookkeeping. The CSV must carry every
// displayed field in display order and leave absent values as empty cells.
func TestExportActivityCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestActivityService(t, db)

	testutil.NewTransaction(model.TransactionDeposit).
		WithAmount(2500).
		WithDate(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)).
		Build(t, db)
	testutil.NewTransaction(model.TransactionDeposit).
		WithoutAmount().
		WithoutDate().
		Build(t, db)

	var buf bytes.Buffer
	if err := svc.ExportActivityCSV(&buf); err != nil {
		t.Fatalf("ExportActivityCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][4] != "amount" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][4] != "2500" {
		t.Errorf("Expected amount 2500, got %q", rows[1][4])
	}
	// The dateless, amountless record exports empty cells, never zeroes.
	if rows[2][1] != "" || rows[2][4] != "" {
		t.Errorf("Expected empty cells for absent values, got %v", rows[2])
	}
}
