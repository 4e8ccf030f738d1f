package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/loopital/ledger-backend/internal/model"
)

// ProjectBuilder provides a fluent interface for creating test projects.
//
// Example usage:
//
//	// Simple creation with defaults
//	project := testutil.NewProject().Build(t, db)
//
//	// Customized project
//	project := testutil.NewProject().
//	    WithName("Solar Farm").
//	    WithRaised(930000, 930000).
//	    WithAmountReleased(500000).
//	    Build(t, db)
type ProjectBuilder struct {
	ID             string
	AltID          string
	Name           string
	RaisedAmount   float64
	TargetAmount   float64
	AmountReleased *float64
	Status         model.ProjectStatus
	CurrentPhase   int
	ROI            float64
	DurationMonths int
}

// NewProject creates a ProjectBuilder with sensible defaults: a fully funded
// project with no released funds reported.
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		ID:             MakeID(),
		Name:           "Test Project",
		RaisedAmount:   100000,
		TargetAmount:   100000,
		Status:         model.ProjectFunded,
		CurrentPhase:   1,
		ROI:            8,
		DurationMonths: 12,
	}
}

// WithID sets a custom ID.
func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.ID = id
	return b
}

// WithAltID sets the alternate UUID identifier.
func (b *ProjectBuilder) WithAltID(altID string) *ProjectBuilder {
	b.AltID = altID
	return b
}

// WithName sets a custom name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.Name = name
	return b
}

// WithRaised sets the raised and target amounts.
func (b *ProjectBuilder) WithRaised(raised, target float64) *ProjectBuilder {
	b.RaisedAmount = raised
	b.TargetAmount = target
	return b
}

// WithAmountReleased marks the released ledger as reported by the backend.
func (b *ProjectBuilder) WithAmountReleased(released float64) *ProjectBuilder {
	b.AmountReleased = &released
	return b
}

// WithStatus sets a custom status.
func (b *ProjectBuilder) WithStatus(status model.ProjectStatus) *ProjectBuilder {
	b.Status = status
	return b
}

// WithTerms sets the ROI percentage and duration in months.
func (b *ProjectBuilder) WithTerms(roi float64, durationMonths int) *ProjectBuilder {
	b.ROI = roi
	b.DurationMonths = durationMonths
	return b
}

// Build creates the project in the database and returns it.
func (b *ProjectBuilder) Build(t *testing.T, db *sql.DB) model.Project {
	t.Helper()

	query := `
		INSERT INTO project (id, alt_id, name, raised_amount, target_amount,
		                     amount_released, status, current_phase, roi, duration_months)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	released := sql.NullFloat64{}
	if b.AmountReleased != nil {
		released = sql.NullFloat64{Float64: *b.AmountReleased, Valid: true}
	}

	_, err := db.Exec(query,
		b.ID, b.AltID, b.Name, b.RaisedAmount, b.TargetAmount,
		released, string(b.Status), b.CurrentPhase, b.ROI, b.DurationMonths,
	)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return model.Project{
		ID:             b.ID,
		AltID:          b.AltID,
		Name:           b.Name,
		RaisedAmount:   b.RaisedAmount,
		TargetAmount:   b.TargetAmount,
		AmountReleased: b.AmountReleased,
		Status:         b.Status,
		CurrentPhase:   b.CurrentPhase,
		ROI:            b.ROI,
		DurationMonths: b.DurationMonths,
	}
}

// InvestmentBuilder provides a fluent interface for creating test
// investments with optional payouts.
type InvestmentBuilder struct {
	ID           string
	ProjectID    string
	Amount       float64
	CurrentValue *float64
	Date         time.Time
	Payouts      []model.Payout
}

// NewInvestment creates an InvestmentBuilder with sensible defaults.
func NewInvestment(projectID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:        MakeID(),
		ProjectID: projectID,
		Amount:    10000,
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.ID = id
	return b
}

// WithAmount sets the invested principal.
func (b *InvestmentBuilder) WithAmount(amount float64) *InvestmentBuilder {
	b.Amount = amount
	return b
}

// WithCurrentValue sets the reported current value.
func (b *InvestmentBuilder) WithCurrentValue(value float64) *InvestmentBuilder {
	b.CurrentValue = &value
	return b
}

// Exited marks the round as fully exited (current value zero).
func (b *InvestmentBuilder) Exited() *InvestmentBuilder {
	zero := 0.0
	b.CurrentValue = &zero
	return b
}

// WithDate sets the investment date.
func (b *InvestmentBuilder) WithDate(date time.Time) *InvestmentBuilder {
	b.Date = date
	return b
}

// WithPayout appends a payout to the investment.
func (b *InvestmentBuilder) WithPayout(amount float64, status model.PayoutStatus, dueDate *time.Time) *InvestmentBuilder {
	b.Payouts = append(b.Payouts, model.Payout{
		ID:      MakeID(),
		Amount:  amount,
		DueDate: dueDate,
		Status:  status,
	})
	return b
}

// Build creates the investment and its payouts in the database.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	currentValue := sql.NullFloat64{}
	if b.CurrentValue != nil {
		currentValue = sql.NullFloat64{Float64: *b.CurrentValue, Valid: true}
	}

	query := `
		INSERT INTO investment (id, project_id, amount, current_value, date)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, b.ProjectID, b.Amount, currentValue, b.Date); err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	payoutQuery := `
		INSERT INTO payout (id, investment_id, amount, due_date, status)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, p := range b.Payouts {
		dueDate := sql.NullTime{}
		if p.DueDate != nil {
			dueDate = sql.NullTime{Time: *p.DueDate, Valid: true}
		}
		if _, err := db.Exec(payoutQuery, p.ID, b.ID, p.Amount, dueDate, string(p.Status)); err != nil {
			t.Fatalf("Failed to create test payout: %v", err)
		}
	}

	return model.Investment{
		ID:           b.ID,
		ProjectID:    b.ProjectID,
		Amount:       b.Amount,
		CurrentValue: b.CurrentValue,
		Date:         b.Date,
		Payouts:      b.Payouts,
	}
}

// WithdrawalRequestBuilder provides a fluent interface for creating test
// withdrawal requests.
type WithdrawalRequestBuilder struct {
	ID          string
	ProjectRef  string
	Amount      float64
	Status      model.WithdrawalStatus
	Phase       int
	RequestDate *time.Time
}

// NewWithdrawalRequest creates a WithdrawalRequestBuilder with sensible defaults.
func NewWithdrawalRequest(projectRef string) *WithdrawalRequestBuilder {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &WithdrawalRequestBuilder{
		ID:          MakeID(),
		ProjectRef:  projectRef,
		Amount:      10000,
		Status:      model.WithdrawalPending,
		Phase:       1,
		RequestDate: &date,
	}
}

// WithAmount sets the requested amount.
func (b *WithdrawalRequestBuilder) WithAmount(amount float64) *WithdrawalRequestBuilder {
	b.Amount = amount
	return b
}

// WithStatus sets the request status.
func (b *WithdrawalRequestBuilder) WithStatus(status model.WithdrawalStatus) *WithdrawalRequestBuilder {
	b.Status = status
	return b
}

// WithRequestDate sets the request date.
func (b *WithdrawalRequestBuilder) WithRequestDate(date time.Time) *WithdrawalRequestBuilder {
	b.RequestDate = &date
	return b
}

// Build creates the withdrawal request in the database and returns it.
func (b *WithdrawalRequestBuilder) Build(t *testing.T, db *sql.DB) model.WithdrawalRequest {
	t.Helper()

	requestDate := sql.NullTime{}
	if b.RequestDate != nil {
		requestDate = sql.NullTime{Time: *b.RequestDate, Valid: true}
	}

	query := `
		INSERT INTO withdrawal_request (id, project_ref, amount, status, phase, request_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, b.ProjectRef, b.Amount, string(b.Status), b.Phase, requestDate); err != nil {
		t.Fatalf("Failed to create test withdrawal request: %v", err)
	}

	return model.WithdrawalRequest{
		ID:          b.ID,
		ProjectRef:  b.ProjectRef,
		Amount:      b.Amount,
		Status:      b.Status,
		Phase:       b.Phase,
		RequestDate: b.RequestDate,
	}
}

// TransactionBuilder provides a fluent interface for creating test wallet
// transactions.
type TransactionBuilder struct {
	ID        string
	Type      model.TransactionType
	Amount    *float64
	Status    model.TransactionStatus
	Date      *time.Time
	CreatedAt *time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(txnType model.TransactionType) *TransactionBuilder {
	amount := 5000.0
	date := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	return &TransactionBuilder{
		ID:     MakeID(),
		Type:   txnType,
		Amount: &amount,
		Status: model.TransactionSuccess,
		Date:   &date,
	}
}

// WithAmount sets the transaction amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = &amount
	return b
}

// WithoutAmount clears the amount, mimicking records the backend reports
// without one.
func (b *TransactionBuilder) WithoutAmount() *TransactionBuilder {
	b.Amount = nil
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = &date
	return b
}

// WithoutDate clears both date fields.
func (b *TransactionBuilder) WithoutDate() *TransactionBuilder {
	b.Date = nil
	b.CreatedAt = nil
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = &createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	amount := sql.NullFloat64{}
	if b.Amount != nil {
		amount = sql.NullFloat64{Float64: *b.Amount, Valid: true}
	}
	date := sql.NullTime{}
	if b.Date != nil {
		date = sql.NullTime{Time: *b.Date, Valid: true}
	}
	createdAt := sql.NullTime{}
	if b.CreatedAt != nil {
		createdAt = sql.NullTime{Time: *b.CreatedAt, Valid: true}
	}

	query := `
		INSERT INTO "transaction" (id, type, amount, status, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, string(b.Type), amount, string(b.Status), date, createdAt); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Type:      b.Type,
		Amount:    b.Amount,
		Status:    b.Status,
		Date:      b.Date,
		CreatedAt: b.CreatedAt,
	}
}
