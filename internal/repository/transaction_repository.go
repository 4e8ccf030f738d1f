package repository

import (
	"database/sql"
	"fmt"

	"github.com/loopital/ledger-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// snapshot table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all wallet transactions from the current
// snapshot in insertion order.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	query := `
          SELECT id, type, amount, status, date, created_at
          FROM "transaction"
          ORDER BY rowid
      `
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var txn model.Transaction
		var txnType, status string
		var date, createdAt sql.NullTime
		var amount sql.NullFloat64

		err := rows.Scan(
			&txn.ID,
			&txnType,
			&amount,
			&status,
			&date,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		txn.Type = model.TransactionType(txnType)
		txn.Status = model.TransactionStatus(status)
		if amount.Valid {
			txn.Amount = &amount.Float64
		}
		if date.Valid {
			utc := date.Time.UTC()
			txn.Date = &utc
		}
		if createdAt.Valid {
			utc := createdAt.Time.UTC()
			txn.CreatedAt = &utc
		}
		transactions = append(transactions, txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// ReplaceAll swaps the transaction snapshot for a fresh one inside the
// caller's transaction.
func (r *TransactionRepository) ReplaceAll(tx *sql.Tx, transactions []model.Transaction) error {
	if _, err := tx.Exec(`DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transaction table: %w", err)
	}

	query := `
          INSERT INTO "transaction" (id, type, amount, status, date, created_at)
          VALUES (?, ?, ?, ?, ?, ?)
      `
	for _, txn := range transactions {
		amount := sql.NullFloat64{}
		if txn.Amount != nil {
			amount = sql.NullFloat64{Float64: *txn.Amount, Valid: true}
		}
		date := sql.NullTime{}
		if txn.Date != nil {
			date = sql.NullTime{Time: *txn.Date, Valid: true}
		}
		createdAt := sql.NullTime{}
		if txn.CreatedAt != nil {
			createdAt = sql.NullTime{Time: *txn.CreatedAt, Valid: true}
		}
		if _, err := tx.Exec(query, txn.ID, string(txn.Type), amount, string(txn.Status), date, createdAt); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}
	return nil
}
