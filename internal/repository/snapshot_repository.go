package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/model"
)

// SnapshotRepository records when each upstream refresh landed so callers
// can tell how stale the served data is.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Record stamps a completed refresh inside the caller's transaction.
func (r *SnapshotRepository) Record(tx *sql.Tx, snapshot model.Snapshot) error {
	query := `INSERT INTO snapshot (id, fetched_at) VALUES (?, ?)`
	if _, err := tx.Exec(query, snapshot.ID, snapshot.FetchedAt); err != nil {
		return fmt.Errorf("failed to record snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// GetLatest retrieves the most recent refresh stamp.
// Returns ErrSnapshotNotFound when no refresh has completed yet.
func (r *SnapshotRepository) GetLatest() (model.Snapshot, error) {
	query := `
          SELECT id, fetched_at
          FROM snapshot
          ORDER BY fetched_at DESC
          LIMIT 1
      `
	var s model.Snapshot
	var fetchedAt time.Time

	err := r.db.QueryRow(query).Scan(&s.ID, &fetchedAt)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	s.FetchedAt = fetchedAt.UTC()
	return s, nil
}
