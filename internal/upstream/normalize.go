package upstream

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/loopital/ledger-backend/internal/model"
)

// rawRecord is one upstream object before field-name normalization. The
// marketplace backend is inconsistent about key casing, so every accessor
// takes the candidate spellings in priority order and returns the first one
// that yields a usable value.
type rawRecord map[string]json.RawMessage

func (r rawRecord) str(keys ...string) string {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		// Numeric ids arrive unquoted from some endpoints.
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil && n.String() != "" {
			return n.String()
		}
	}
	return ""
}

func (r rawRecord) num(keys ...string) *float64 {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return &f
		}
		// Amounts occasionally arrive as numeric strings.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func (r rawRecord) intval(keys ...string) int {
	if f := r.num(keys...); f != nil {
		return int(*f)
	}
	return 0
}

// date parses the first candidate key that holds a parsable timestamp.
// Malformed or missing dates yield nil, never an error; downstream sorting
// and filtering handle absent dates.
func (r rawRecord) date(keys ...string) *time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				utc := t.UTC()
				return &utc
			}
		}
	}
	return nil
}

func (r rawRecord) object(keys ...string) rawRecord {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		var obj rawRecord
		if err := json.Unmarshal(raw, &obj); err == nil && len(obj) > 0 {
			return obj
		}
	}
	return nil
}

func (r rawRecord) list(keys ...string) []rawRecord {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		var items []rawRecord
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
	}
	return nil
}

// normalizeProject maps an upstream project record onto the semantic field
// names the calculator operates on.
func normalizeProject(r rawRecord) model.Project {
	return model.Project{
		ID:             r.str("id", "_id", "projectId", "project_id"),
		AltID:          r.str("altId", "alt_id", "uuid"),
		Name:           r.str("name", "title"),
		RaisedAmount:   floatOrZero(r.num("raisedAmount", "raised_amount")),
		TargetAmount:   floatOrZero(r.num("targetAmount", "target_amount")),
		AmountReleased: r.num("amountReleased", "amount_released"),
		Status:         model.ProjectStatus(r.str("status")),
		CurrentPhase:   r.intval("currentPhase", "current_phase"),
		ROI:            floatOrZero(r.num("roi", "expectedRoi", "expected_roi")),
		DurationMonths: r.intval("durationMonths", "duration_months"),
	}
}

func normalizeInvestment(r rawRecord) model.Investment {
	inv := model.Investment{
		ID:           r.str("id", "_id"),
		ProjectID:    r.str("projectId", "project_id", "projectRef", "project_ref"),
		Amount:       floatOrZero(r.num("amount")),
		CurrentValue: r.num("currentValue", "current_value"),
	}
	if d := r.date("date", "createdAt", "created_at"); d != nil {
		inv.Date = *d
	}
	if embedded := r.object("project"); embedded != nil {
		p := normalizeProject(embedded)
		inv.Project = &p
		if inv.ProjectID == "" {
			inv.ProjectID = p.ID
		}
	}
	for _, raw := range r.list("payouts") {
		inv.Payouts = append(inv.Payouts, normalizePayout(raw))
	}
	return inv
}

func normalizePayout(r rawRecord) model.Payout {
	return model.Payout{
		ID:      r.str("id", "_id"),
		Amount:  floatOrZero(r.num("amount")),
		DueDate: r.date("dueDate", "due_date"),
		Status:  model.PayoutStatus(r.str("status")),
	}
}

func normalizeWithdrawalRequest(r rawRecord) model.WithdrawalRequest {
	return model.WithdrawalRequest{
		ID:          r.str("id", "_id"),
		ProjectRef:  r.str("projectRef", "project_ref", "projectId", "project_id"),
		Amount:      floatOrZero(r.num("amount")),
		Status:      model.WithdrawalStatus(r.str("status")),
		Phase:       r.intval("phase"),
		RequestDate: r.date("requestDate", "request_date", "createdAt", "created_at"),
	}
}

func normalizeTransaction(r rawRecord) model.Transaction {
	return model.Transaction{
		ID:        r.str("id", "_id"),
		Type:      model.TransactionType(r.str("type")),
		Amount:    r.num("amount"),
		Status:    model.TransactionStatus(r.str("status")),
		Date:      r.date("date"),
		CreatedAt: r.date("createdAt", "created_at"),
	}
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
