package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/cache"
	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/repository"
)

// Cache keys for derived views. RefreshService deletes these after every
// snapshot swap so stale derivations are never served past a refresh.
const (
	portfolioCacheKey = "ledger:view:portfolio"
	scheduleCacheKey  = "ledger:view:schedule"
)

// PortfolioService derives the investor-facing portfolio views from the
// current snapshot. All arithmetic lives in the ledger package; this layer
// loads data, assembles views, and caches the result between refreshes.
type PortfolioService struct {
	investmentRepo *repository.InvestmentRepository
	projectRepo    *repository.ProjectRepository
	snapshotRepo   *repository.SnapshotRepository
	cache          cache.Cache
	cacheTTL       time.Duration
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	investmentRepo *repository.InvestmentRepository,
	projectRepo *repository.ProjectRepository,
	snapshotRepo *repository.SnapshotRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) *PortfolioService {
	return &PortfolioService{
		investmentRepo: investmentRepo,
		projectRepo:    projectRepo,
		snapshotRepo:   snapshotRepo,
		cache:          c,
		cacheTTL:       cacheTTL,
	}
}

// GroupView is a per-project investment group enriched with its derived
// return figures.
type GroupView struct {
	model.GroupedInvestment
	RealizedReturns float64 `json:"realizedReturns"`
	PercentReturn   float64 `json:"percentReturn"`
}

// PortfolioView is the complete portfolio response: all investment groups,
// the aggregate summary, the next upcoming payout if any, and the time the
// underlying snapshot was fetched.
type PortfolioView struct {
	Investments []GroupView            `json:"investments"`
	Summary     model.PortfolioSummary `json:"summary"`
	NextPayout  *model.UpcomingPayout  `json:"nextPayout,omitempty"`
	FetchedAt   *time.Time             `json:"fetchedAt,omitempty"`
}

// GetPortfolio returns the derived portfolio view, served from cache when a
// fresh enough copy exists.
func (s *PortfolioService) GetPortfolio(ctx context.Context) (PortfolioView, error) {
	if data, err := s.cache.Get(ctx, portfolioCacheKey); err == nil {
		var view PortfolioView
		if err := json.Unmarshal(data, &view); err == nil {
			return view, nil
		}
	}

	view, err := s.buildPortfolio()
	if err != nil {
		return PortfolioView{}, err
	}

	if data, err := json.Marshal(view); err == nil {
		// A failed cache write only costs the next caller a recompute.
		_ = s.cache.Set(ctx, portfolioCacheKey, data, s.cacheTTL)
	}
	return view, nil
}

// GetUpcomingSchedule returns the future payout schedule across all groups,
// including projected term-end entries for groups without authoritative
// pending payouts.
func (s *PortfolioService) GetUpcomingSchedule(ctx context.Context) ([]model.UpcomingPayout, error) {
	if data, err := s.cache.Get(ctx, scheduleCacheKey); err == nil {
		var schedule []model.UpcomingPayout
		if err := json.Unmarshal(data, &schedule); err == nil {
			return schedule, nil
		}
	}

	groups, err := s.loadGroups()
	if err != nil {
		return nil, err
	}
	schedule := ledger.UpcomingSchedule(groups, time.Now().UTC())

	if data, err := json.Marshal(schedule); err == nil {
		_ = s.cache.Set(ctx, scheduleCacheKey, data, s.cacheTTL)
	}
	return schedule, nil
}

func (s *PortfolioService) buildPortfolio() (PortfolioView, error) {
	groups, err := s.loadGroups()
	if err != nil {
		return PortfolioView{}, err
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		views[i] = GroupView{
			GroupedInvestment: g,
			RealizedReturns:   ledger.Round(ledger.RealizedReturns(g)),
			PercentReturn:     ledger.Round(ledger.PercentReturn(g)),
		}
	}

	view := PortfolioView{
		Investments: views,
		Summary:     ledger.Summarize(groups),
		NextPayout:  ledger.NextUpcomingPayout(groups, time.Now().UTC()),
	}

	snapshot, err := s.snapshotRepo.GetLatest()
	if err == nil {
		view.FetchedAt = &snapshot.FetchedAt
	} else if err != apperrors.ErrSnapshotNotFound {
		return PortfolioView{}, err
	}
	return view, nil
}

// loadGroups loads the snapshot and groups investments per project. Projects
// are indexed by both identifiers so either spelling of a reference resolves.
func (s *PortfolioService) loadGroups() ([]model.GroupedInvestment, error) {
	investments, err := s.investmentRepo.GetInvestments()
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.GetProjects()
	if err != nil {
		return nil, err
	}

	index := make(map[string]model.Project, len(projects))
	for _, p := range projects {
		index[p.ID] = p
		if p.AltID != "" {
			index[p.AltID] = p
		}
	}
	return ledger.GroupByProject(investments, index), nil
}
