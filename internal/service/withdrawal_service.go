package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/loopital/ledger-backend/internal/cache"
	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/repository"
	"github.com/loopital/ledger-backend/internal/upstream"
)

// WithdrawalService handles owner withdrawal balances and submissions. It
// validates against the ledger rules before forwarding anything upstream, so
// a rejected request never leaves the service.
type WithdrawalService struct {
	projectRepo    *repository.ProjectRepository
	withdrawalRepo *repository.WithdrawalRepository
	client         upstream.Client
	policy         ledger.Policy
	cache          cache.Cache
}

// NewWithdrawalService creates a new WithdrawalService with the provided dependencies.
func NewWithdrawalService(
	projectRepo *repository.ProjectRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	client upstream.Client,
	policy ledger.Policy,
	c cache.Cache,
) *WithdrawalService {
	return &WithdrawalService{
		projectRepo:    projectRepo,
		withdrawalRepo: withdrawalRepo,
		client:         client,
		policy:         policy,
		cache:          c,
	}
}

// BalanceView reports how much a project owner can withdraw and the request
// history the figure was derived from.
type BalanceView struct {
	Project          model.Project             `json:"project"`
	NetAfterFee      float64                   `json:"netAfterFee"`
	AvailableBalance float64                   `json:"availableBalance"`
	HasPending       bool                      `json:"hasPending"`
	Requests         []model.WithdrawalRequest `json:"requests"`
}

// GetBalance computes the available withdrawal balance for the project
// matching ref by either of its identifiers.
func (s *WithdrawalService) GetBalance(ref string) (BalanceView, error) {
	project, err := s.projectRepo.GetProjectOnRef(ref)
	if err != nil {
		return BalanceView{}, err
	}
	requests, err := s.withdrawalRepo.GetWithdrawalRequests()
	if err != nil {
		return BalanceView{}, err
	}

	matched := ledger.RequestsFor(project, requests)
	if matched == nil {
		matched = []model.WithdrawalRequest{}
	}
	return BalanceView{
		Project:          project,
		NetAfterFee:      ledger.Round(s.policy.NetAfterFee(project.RaisedAmount)),
		AvailableBalance: ledger.Round(ledger.AvailableBalance(project, requests, s.policy)),
		HasPending:       ledger.HasPendingRequest(project, requests),
		Requests:         matched,
	}, nil
}

// GetRequests returns all withdrawal requests in the current snapshot.
func (s *WithdrawalService) GetRequests() ([]model.WithdrawalRequest, error) {
	return s.withdrawalRepo.GetWithdrawalRequests()
}

// GetRequest returns a single withdrawal request by id.
func (s *WithdrawalService) GetRequest(id string) (model.WithdrawalRequest, error) {
	return s.withdrawalRepo.GetWithdrawalRequestOnID(id)
}

// Submit validates a new withdrawal request and, when it passes, forwards it
// to the marketplace and records it locally so the pending-request gate
// holds before the next refresh. Validation failures return a
// *ledger.RejectionError and leave no trace anywhere.
func (s *WithdrawalService) Submit(ctx context.Context, ref string, amount float64) (model.WithdrawalRequest, error) {
	project, err := s.projectRepo.GetProjectOnRef(ref)
	if err != nil {
		return model.WithdrawalRequest{}, err
	}
	requests, err := s.withdrawalRepo.GetWithdrawalRequests()
	if err != nil {
		return model.WithdrawalRequest{}, err
	}

	if err := ledger.ValidateSubmission(&project, requests, amount, s.policy); err != nil {
		return model.WithdrawalRequest{}, err
	}

	created, err := s.client.SubmitWithdrawal(ctx, upstream.WithdrawalSubmission{
		ProjectRef: project.ID,
		Amount:     amount,
		Phase:      project.CurrentPhase,
	})
	if err != nil {
		return model.WithdrawalRequest{}, err
	}

	// The marketplace may return a sparse acknowledgement; fill in what the
	// local snapshot needs to enforce the single-pending rule.
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.ProjectRef == "" {
		created.ProjectRef = project.ID
	}
	if created.Status == "" {
		created.Status = model.WithdrawalPending
	}
	if created.RequestDate == nil {
		now := time.Now().UTC()
		created.RequestDate = &now
	}

	if err := s.withdrawalRepo.Insert(created); err != nil {
		return model.WithdrawalRequest{}, err
	}
	_ = s.cache.Delete(ctx, portfolioCacheKey, scheduleCacheKey)

	return created, nil
}
