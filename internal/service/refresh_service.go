package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/loopital/ledger-backend/internal/cache"
	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/repository"
	"github.com/loopital/ledger-backend/internal/upstream"
)

// RefreshService pulls the full dataset from the marketplace and swaps the
// local snapshot in a single transaction. Readers either see the previous
// complete snapshot or the new one, never a mix.
type RefreshService struct {
	db              *sql.DB
	client          upstream.Client
	projectRepo     *repository.ProjectRepository
	investmentRepo  *repository.InvestmentRepository
	withdrawalRepo  *repository.WithdrawalRepository
	transactionRepo *repository.TransactionRepository
	snapshotRepo    *repository.SnapshotRepository
	cache           cache.Cache
}

// NewRefreshService creates a new RefreshService with the provided dependencies.
func NewRefreshService(
	db *sql.DB,
	client upstream.Client,
	projectRepo *repository.ProjectRepository,
	investmentRepo *repository.InvestmentRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	transactionRepo *repository.TransactionRepository,
	snapshotRepo *repository.SnapshotRepository,
	c cache.Cache,
) *RefreshService {
	return &RefreshService{
		db:              db,
		client:          client,
		projectRepo:     projectRepo,
		investmentRepo:  investmentRepo,
		withdrawalRepo:  withdrawalRepo,
		transactionRepo: transactionRepo,
		snapshotRepo:    snapshotRepo,
		cache:           c,
	}
}

// Refresh fetches all four collections from the marketplace in parallel and
// replaces the snapshot atomically. Any fetch failure aborts the whole
// refresh and keeps the previous snapshot intact.
func (s *RefreshService) Refresh(ctx context.Context) (model.Snapshot, error) {
	var (
		investments  []model.Investment
		projects     []model.Project
		requests     []model.WithdrawalRequest
		transactions []model.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		investments, err = s.client.FetchInvestments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.client.FetchProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.client.FetchWithdrawalRequests(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.client.FetchTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Snapshot{}, fmt.Errorf("refresh aborted: %w", err)
	}

	// Investments may carry embedded projects the project listing omits.
	projects = mergeEmbeddedProjects(projects, investments)

	snapshot := model.Snapshot{
		ID:        uuid.New().String(),
		FetchedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to begin refresh transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.projectRepo.ReplaceAll(tx, projects); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.investmentRepo.ReplaceAll(tx, investments); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.withdrawalRepo.ReplaceAll(tx, requests); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.transactionRepo.ReplaceAll(tx, transactions); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.snapshotRepo.Record(tx, snapshot); err != nil {
		return model.Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to commit refresh transaction: %w", err)
	}

	if err := s.cache.Delete(ctx, portfolioCacheKey, scheduleCacheKey); err != nil {
		log.Printf("Warning: failed to invalidate derived view cache: %v", err)
	}

	log.Printf("Snapshot %s refreshed: %d investments, %d projects, %d withdrawal requests, %d transactions",
		snapshot.ID, len(investments), len(projects), len(requests), len(transactions))
	return snapshot, nil
}

// mergeEmbeddedProjects appends projects that only appear embedded inside an
// investment record. The standalone listing wins on conflicts.
func mergeEmbeddedProjects(projects []model.Project, investments []model.Investment) []model.Project {
	seen := make(map[string]bool, len(projects))
	for _, p := range projects {
		seen[p.ID] = true
	}
	for _, inv := range investments {
		if inv.Project == nil || inv.Project.ID == "" || seen[inv.Project.ID] {
			continue
		}
		seen[inv.Project.ID] = true
		projects = append(projects, *inv.Project)
	}
	return projects
}
