package ledger_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
)

// TestNormalizeActivities tests activity feed classification and ordering.
//
// WHY: The feed merges records with inconsistent date field spellings and
// loose typing. Normalization must sort newest first, push dateless records
// to the end, and never render an absent amount as 0.
func TestNormalizeActivities(t *testing.T) {
	t.Run("sorts descending by best available date", func(t *testing.T) {
		older := day(2025, 1, 1)
		newer := day(2025, 6, 1)
		records := []model.ActivityRecord{
			{ID: "a", Type: "deposit", Date: &older},
			{ID: "b", Type: "deposit", CreatedAt: &newer},
		}

		feed := ledger.NormalizeActivities(records)

		if feed[0].ID != "b" || feed[1].ID != "a" {
			t.Errorf("Expected [b a], got [%s %s]", feed[0].ID, feed[1].ID)
		}
	})

	t.Run("dateless records sort last", func(t *testing.T) {
		dated := day(2025, 1, 1)
		amount := 0.0
		records := []model.ActivityRecord{
			{ID: "undated", Type: "deposit", Amount: &amount},
			{ID: "dated", Type: "deposit", Date: &dated},
		}

		feed := ledger.NormalizeActivities(records)

		if feed[len(feed)-1].ID != "undated" {
			t.Errorf("Expected undated record last, got %s", feed[len(feed)-1].ID)
		}
		if feed[len(feed)-1].HasAmount {
			t.Error("Expected zero amount to be treated as absent")
		}
	})

	t.Run("falls back through date, createdAt, requestDate", func(t *testing.T) {
		request := day(2025, 3, 1)
		records := []model.ActivityRecord{
			{ID: "a", Type: "withdrawal", RequestDate: &request},
		}

		feed := ledger.NormalizeActivities(records)

		if feed[0].Date == nil || !feed[0].Date.Equal(request) {
			t.Errorf("Expected requestDate fallback, got %v", feed[0].Date)
		}
	})

	t.Run("classifies types with investment_received synonym", func(t *testing.T) {
		tests := []struct {
			rawType string
			kind    model.ActivityKind
			title   string
		}{
			{"deposit", model.ActivityDeposit, "Deposit"},
			{"withdrawal", model.ActivityWithdrawal, "Withdrawal"},
			{"investment", model.ActivityInvestment, "Investment"},
			{"investment_received", model.ActivityInvestment, "Investment"},
			{"wallet_topup_bonus", model.ActivityOther, "Wallet Topup Bonus"},
		}

		for _, tt := range tests {
			t.Run(tt.rawType, func(t *testing.T) {
				feed := ledger.NormalizeActivities([]model.ActivityRecord{{ID: "x", Type: tt.rawType}})
				if feed[0].Kind != tt.kind {
					t.Errorf("Expected kind %s, got %s", tt.kind, feed[0].Kind)
				}
				if feed[0].Title != tt.title {
					t.Errorf("Expected title %q, got %q", tt.title, feed[0].Title)
				}
			})
		}
	})

	t.Run("amount present only when finite and non-zero", func(t *testing.T) {
		value := 150.0
		zero := 0.0
		records := []model.ActivityRecord{
			{ID: "present", Type: "deposit", Amount: &value},
			{ID: "zero", Type: "deposit", Amount: &zero},
			{ID: "absent", Type: "deposit"},
		}

		feed := ledger.NormalizeActivities(records)

		for _, entry := range feed {
			switch entry.ID {
			case "present":
				if !entry.HasAmount || entry.Amount != 150 {
					t.Errorf("Expected amount 150 present, got %+v", entry)
				}
			case "zero", "absent":
				if entry.HasAmount {
					t.Errorf("Expected %s to have no amount", entry.ID)
				}
			}
		}
	})
}

// TestExportCSV tests the lossless tabular export of the activity feed.
//
// WHY: Reporting depends on every displayed field surviving export, in
// display order, with absent amounts as empty cells rather than 0.
func TestExportCSV(t *testing.T) {
	dated := day(2025, 4, 1)
	amount := 250.5
	feed := ledger.NormalizeActivities([]model.ActivityRecord{
		{ID: "t1", Type: "deposit", Amount: &amount, Status: "success", Date: &dated},
		{ID: "t2", Type: "withdrawal", Status: "pending"},
	})

	var buf bytes.Buffer
	if err := ledger.ExportCSV(&buf, feed); err != nil {
		t.Fatalf("ExportCSV returned unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to re-read exported CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "id" || header[4] != "amount" {
		t.Errorf("Unexpected header: %v", header)
	}

	// Export order matches display order: dated deposit first.
	if rows[1][0] != "t1" || rows[1][4] != "250.5" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "t2" || rows[2][4] != "" {
		t.Errorf("Expected empty amount cell for t2, got %v", rows[2])
	}
}
