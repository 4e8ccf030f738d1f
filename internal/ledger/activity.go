package ledger

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/loopital/ledger-backend/internal/model"
)

// NormalizeActivities turns raw activity records into display-ready feed
// entries, sorted descending by best-available date. The date of a record is
// the first of date, createdAt, requestDate that is present; records without
// any usable date sort as epoch zero, i.e. to the end of the list.
//
// Classification tolerates the synonym "investment_received" for investment.
// Unrecognized types are kept as "other" with a title-cased rendering of the
// raw type. An amount is present only when it is a finite, non-zero number.
func NormalizeActivities(records []model.ActivityRecord) []model.NormalizedActivity {
	normalized := make([]model.NormalizedActivity, len(records))
	for i, r := range records {
		kind := classify(r.Type)
		entry := model.NormalizedActivity{
			ID:     r.ID,
			Kind:   kind,
			Title:  titleFor(kind, r.Type),
			Status: r.Status,
			Date:   bestDate(r),
		}
		if r.Amount != nil && finite(*r.Amount) && *r.Amount != 0 {
			entry.Amount = *r.Amount
			entry.HasAmount = true
		}
		normalized[i] = entry
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return sortDate(normalized[i].Date).After(sortDate(normalized[j].Date))
	})

	return normalized
}

// ExportCSV writes the activity feed as tabular text in display order. Every
// displayed field is exported so the round trip is lossless; absent amounts
// and dates export as empty cells, never as 0.
func ExportCSV(w io.Writer, activities []model.NormalizedActivity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "kind", "title", "amount", "status"}); err != nil {
		return err
	}
	for _, a := range activities {
		date := ""
		if a.Date != nil {
			date = a.Date.UTC().Format(time.RFC3339)
		}
		amount := ""
		if a.HasAmount {
			amount = strconv.FormatFloat(a.Amount, 'f', -1, 64)
		}
		if err := cw.Write([]string{a.ID, date, string(a.Kind), a.Title, amount, a.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// bestDate picks the first usable date from a raw record.
func bestDate(r model.ActivityRecord) *time.Time {
	switch {
	case r.Date != nil:
		return r.Date
	case r.CreatedAt != nil:
		return r.CreatedAt
	case r.RequestDate != nil:
		return r.RequestDate
	}
	return nil
}

// sortDate maps an absent date to epoch zero so it sorts last in a
// descending feed.
func sortDate(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0).UTC()
	}
	return *t
}

func classify(rawType string) model.ActivityKind {
	switch strings.ToLower(strings.TrimSpace(rawType)) {
	case "deposit":
		return model.ActivityDeposit
	case "withdrawal":
		return model.ActivityWithdrawal
	case "investment", "investment_received":
		return model.ActivityInvestment
	}
	return model.ActivityOther
}

func titleFor(kind model.ActivityKind, rawType string) string {
	switch kind {
	case model.ActivityDeposit:
		return "Deposit"
	case model.ActivityWithdrawal:
		return "Withdrawal"
	case model.ActivityInvestment:
		return "Investment"
	}
	return titleCase(strings.ReplaceAll(rawType, "_", " "))
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
