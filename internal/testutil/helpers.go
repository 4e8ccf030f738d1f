package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/loopital/ledger-backend/internal/cache"
	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/repository"
	"github.com/loopital/ledger-backend/internal/service"
	"github.com/loopital/ledger-backend/internal/upstream"
)

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewInvestmentRepository(db),
		repository.NewProjectRepository(db),
		repository.NewSnapshotRepository(db),
		cache.NewMemoryCache(),
		time.Minute,
	)
}

func NewTestWithdrawalService(t *testing.T, db *sql.DB, client upstream.Client) *service.WithdrawalService {
	t.Helper()

	return service.NewWithdrawalService(
		repository.NewProjectRepository(db),
		repository.NewWithdrawalRepository(db),
		client,
		ledger.DefaultPolicy(),
		cache.NewMemoryCache(),
	)
}

func NewTestActivityService(t *testing.T, db *sql.DB) *service.ActivityService {
	t.Helper()

	return service.NewActivityService(
		repository.NewTransactionRepository(db),
		repository.NewWithdrawalRepository(db),
	)
}

func NewTestRefreshService(t *testing.T, db *sql.DB, client upstream.Client) *service.RefreshService {
	t.Helper()

	return service.NewRefreshService(
		db,
		client,
		repository.NewProjectRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewWithdrawalRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewSnapshotRepository(db),
		cache.NewMemoryCache(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, repository.NewSnapshotRepository(db))
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
