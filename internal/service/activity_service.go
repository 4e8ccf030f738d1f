package service

import (
	"io"

	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/repository"
)

// ActivityService assembles the unified activity feed from wallet
// transactions and withdrawal requests.
type ActivityService struct {
	transactionRepo *repository.TransactionRepository
	withdrawalRepo  *repository.WithdrawalRepository
}

// NewActivityService creates a new ActivityService with the provided repository dependencies.
func NewActivityService(
	transactionRepo *repository.TransactionRepository,
	withdrawalRepo *repository.WithdrawalRepository,
) *ActivityService {
	return &ActivityService{
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
	}
}

// GetActivityFeed returns the normalized activity feed, newest first.
// Wallet transactions and withdrawal requests are merged into one list
// before normalization so the sort covers both sources.
func (s *ActivityService) GetActivityFeed() ([]model.NormalizedActivity, error) {
	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	return ledger.NormalizeActivities(records), nil
}

// ExportActivityCSV writes the activity feed to w as CSV, in the same order
// the feed displays it.
func (s *ActivityService) ExportActivityCSV(w io.Writer) error {
	activities, err := s.GetActivityFeed()
	if err != nil {
		return err
	}
	return ledger.ExportCSV(w, activities)
}

func (s *ActivityService) loadRecords() ([]model.ActivityRecord, error) {
	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, err
	}
	requests, err := s.withdrawalRepo.GetWithdrawalRequests()
	if err != nil {
		return nil, err
	}

	records := make([]model.ActivityRecord, 0, len(transactions)+len(requests))
	for _, t := range transactions {
		records = append(records, model.ActivityRecord{
			ID:        t.ID,
			Type:      string(t.Type),
			Amount:    t.Amount,
			Status:    string(t.Status),
			Date:      t.Date,
			CreatedAt: t.CreatedAt,
		})
	}
	for _, r := range requests {
		amount := r.Amount
		records = append(records, model.ActivityRecord{
			ID:          r.ID,
			Type:        "withdrawal",
			Amount:      &amount,
			Status:      string(r.Status),
			RequestDate: r.RequestDate,
		})
	}
	return records, nil
}
