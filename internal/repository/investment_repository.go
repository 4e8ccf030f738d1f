package repository

import (
	"database/sql"
	"fmt"

	"github.com/loopital/ledger-backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment and
// payout snapshot tables. Payouts are stored per investment and reattached
// on read so the calculator always sees complete records.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// GetInvestments retrieves all investments from the current snapshot with
// their payouts attached, in insertion order.
func (r *InvestmentRepository) GetInvestments() ([]model.Investment, error) {
	query := `
          SELECT id, project_id, amount, current_value, date
          FROM investment
          ORDER BY rowid
      `
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	indexByID := map[string]int{}

	for rows.Next() {
		var inv model.Investment
		var currentValue sql.NullFloat64

		err := rows.Scan(
			&inv.ID,
			&inv.ProjectID,
			&inv.Amount,
			&currentValue,
			&inv.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		if currentValue.Valid {
			inv.CurrentValue = &currentValue.Float64
		}
		indexByID[inv.ID] = len(investments)
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	if err := r.attachPayouts(investments, indexByID); err != nil {
		return nil, err
	}

	return investments, nil
}

// attachPayouts loads all payouts in one query and distributes them onto
// their investments.
func (r *InvestmentRepository) attachPayouts(investments []model.Investment, indexByID map[string]int) error {
	if len(investments) == 0 {
		return nil
	}

	query := `
          SELECT id, investment_id, amount, due_date, status
          FROM payout
          ORDER BY rowid
      `
	rows, err := r.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query payout table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Payout
		var investmentID string
		var dueDate sql.NullTime

		err := rows.Scan(
			&p.ID,
			&investmentID,
			&p.Amount,
			&dueDate,
			&p.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to scan payout table results: %w", err)
		}

		if dueDate.Valid {
			utc := dueDate.Time.UTC()
			p.DueDate = &utc
		}
		if i, ok := indexByID[investmentID]; ok {
			investments[i].Payouts = append(investments[i].Payouts, p)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating payout table: %w", err)
	}

	return nil
}

// ReplaceAll swaps the investment and payout snapshots for fresh ones inside
// the caller's transaction.
func (r *InvestmentRepository) ReplaceAll(tx *sql.Tx, investments []model.Investment) error {
	if _, err := tx.Exec("DELETE FROM payout"); err != nil {
		return fmt.Errorf("failed to clear payout table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM investment"); err != nil {
		return fmt.Errorf("failed to clear investment table: %w", err)
	}

	investmentQuery := `
          INSERT INTO investment (id, project_id, amount, current_value, date)
          VALUES (?, ?, ?, ?, ?)
      `
	payoutQuery := `
          INSERT INTO payout (id, investment_id, amount, due_date, status)
          VALUES (?, ?, ?, ?, ?)
      `
	for _, inv := range investments {
		currentValue := sql.NullFloat64{}
		if inv.CurrentValue != nil {
			currentValue = sql.NullFloat64{Float64: *inv.CurrentValue, Valid: true}
		}
		if _, err := tx.Exec(investmentQuery, inv.ID, inv.ProjectID, inv.Amount, currentValue, inv.Date); err != nil {
			return fmt.Errorf("failed to insert investment %s: %w", inv.ID, err)
		}

		for _, p := range inv.Payouts {
			dueDate := sql.NullTime{}
			if p.DueDate != nil {
				dueDate = sql.NullTime{Time: *p.DueDate, Valid: true}
			}
			if _, err := tx.Exec(payoutQuery, p.ID, inv.ID, p.Amount, dueDate, string(p.Status)); err != nil {
				return fmt.Errorf("failed to insert payout %s: %w", p.ID, err)
			}
		}
	}
	return nil
}
