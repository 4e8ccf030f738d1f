package service

import (
	"database/sql"

	"github.com/loopital/ledger-backend/internal/database"
	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/repository"
	"github.com/loopital/ledger-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db           *sql.DB
	snapshotRepo *repository.SnapshotRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, snapshotRepo *repository.SnapshotRepository) *SystemService {
	return &SystemService{
		db:           db,
		snapshotRepo: snapshotRepo,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

func (s *SystemService) CheckVersion() string {
	return version.Version
}

// LastRefresh returns the most recent snapshot stamp.
func (s *SystemService) LastRefresh() (model.Snapshot, error) {
	return s.snapshotRepo.GetLatest()
}
