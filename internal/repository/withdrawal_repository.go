package repository

import (
	"database/sql"
	"fmt"

	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/model"
)

// WithdrawalRepository provides data access methods for the
// withdrawal_request snapshot table.
type WithdrawalRepository struct {
	db *sql.DB
}

// NewWithdrawalRepository creates a new WithdrawalRepository with the provided database connection.
func NewWithdrawalRepository(db *sql.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// GetWithdrawalRequests retrieves all withdrawal requests from the current
// snapshot in insertion order.
func (r *WithdrawalRepository) GetWithdrawalRequests() ([]model.WithdrawalRequest, error) {
	query := `
          SELECT id, project_ref, amount, status, phase, request_date
          FROM withdrawal_request
          ORDER BY rowid
      `
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal_request table: %w", err)
	}
	defer rows.Close()

	requests := []model.WithdrawalRequest{}
	for rows.Next() {
		w, err := scanWithdrawalRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating withdrawal_request table: %w", err)
	}

	return requests, nil
}

// GetWithdrawalRequestOnID retrieves a single withdrawal request by id.
// Returns ErrWithdrawalRequestNotFound when it does not exist.
func (r *WithdrawalRepository) GetWithdrawalRequestOnID(id string) (model.WithdrawalRequest, error) {
	query := `
          SELECT id, project_ref, amount, status, phase, request_date
          FROM withdrawal_request
          WHERE id = ?
      `
	w, err := scanWithdrawalRequest(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return model.WithdrawalRequest{}, apperrors.ErrWithdrawalRequestNotFound
	}
	if err != nil {
		return model.WithdrawalRequest{}, err
	}
	return w, nil
}

// Insert records a newly created withdrawal request in the snapshot so the
// pending-request gate holds immediately, before the next poll confirms it.
func (r *WithdrawalRepository) Insert(w model.WithdrawalRequest) error {
	query := `
          INSERT INTO withdrawal_request (id, project_ref, amount, status, phase, request_date)
          VALUES (?, ?, ?, ?, ?, ?)
      `
	requestDate := sql.NullTime{}
	if w.RequestDate != nil {
		requestDate = sql.NullTime{Time: *w.RequestDate, Valid: true}
	}
	if _, err := r.db.Exec(query, w.ID, w.ProjectRef, w.Amount, string(w.Status), w.Phase, requestDate); err != nil {
		return fmt.Errorf("failed to insert withdrawal request %s: %w", w.ID, err)
	}
	return nil
}

// ReplaceAll swaps the withdrawal request snapshot for a fresh one inside
// the caller's transaction.
func (r *WithdrawalRepository) ReplaceAll(tx *sql.Tx, requests []model.WithdrawalRequest) error {
	if _, err := tx.Exec("DELETE FROM withdrawal_request"); err != nil {
		return fmt.Errorf("failed to clear withdrawal_request table: %w", err)
	}

	query := `
          INSERT INTO withdrawal_request (id, project_ref, amount, status, phase, request_date)
          VALUES (?, ?, ?, ?, ?, ?)
      `
	for _, w := range requests {
		requestDate := sql.NullTime{}
		if w.RequestDate != nil {
			requestDate = sql.NullTime{Time: *w.RequestDate, Valid: true}
		}
		if _, err := tx.Exec(query, w.ID, w.ProjectRef, w.Amount, string(w.Status), w.Phase, requestDate); err != nil {
			return fmt.Errorf("failed to insert withdrawal request %s: %w", w.ID, err)
		}
	}
	return nil
}

func scanWithdrawalRequest(s scanner) (model.WithdrawalRequest, error) {
	var w model.WithdrawalRequest
	var status string
	var requestDate sql.NullTime

	err := s.Scan(
		&w.ID,
		&w.ProjectRef,
		&w.Amount,
		&status,
		&w.Phase,
		&requestDate,
	)
	if err == sql.ErrNoRows {
		return model.WithdrawalRequest{}, err
	}
	if err != nil {
		return model.WithdrawalRequest{}, fmt.Errorf("failed to scan withdrawal_request table results: %w", err)
	}

	w.Status = model.WithdrawalStatus(status)
	if requestDate.Valid {
		utc := requestDate.Time.UTC()
		w.RequestDate = &utc
	}
	return w, nil
}
