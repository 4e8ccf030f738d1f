package testutil

import (
	"context"

	"github.com/loopital/ledger-backend/internal/model"
	"github.com/loopital/ledger-backend/internal/upstream"
)

// MockUpstreamClient is a canned-response implementation of upstream.Client
// for testing refresh and withdrawal flows without a live marketplace.
//
// Example usage:
//
//	mock := &testutil.MockUpstreamClient{
//	    Projects: []model.Project{project},
//	}
//	svc := testutil.NewTestRefreshService(t, db, mock)
type MockUpstreamClient struct {
	Investments  []model.Investment
	Projects     []model.Project
	Requests     []model.WithdrawalRequest
	Transactions []model.Transaction

	// Err, when set, is returned by every fetch call.
	Err error

	// SubmitFunc, when set, overrides the default SubmitWithdrawal behavior
	// of echoing the submission back as a pending request.
	SubmitFunc func(submission upstream.WithdrawalSubmission) (model.WithdrawalRequest, error)

	// Submitted records every submission that reached the mock.
	Submitted []upstream.WithdrawalSubmission
}

func (m *MockUpstreamClient) FetchInvestments(_ context.Context) ([]model.Investment, error) {
	return m.Investments, m.Err
}

func (m *MockUpstreamClient) FetchProjects(_ context.Context) ([]model.Project, error) {
	return m.Projects, m.Err
}

func (m *MockUpstreamClient) FetchWithdrawalRequests(_ context.Context) ([]model.WithdrawalRequest, error) {
	return m.Requests, m.Err
}

func (m *MockUpstreamClient) FetchTransactions(_ context.Context) ([]model.Transaction, error) {
	return m.Transactions, m.Err
}

func (m *MockUpstreamClient) SubmitWithdrawal(_ context.Context, submission upstream.WithdrawalSubmission) (model.WithdrawalRequest, error) {
	m.Submitted = append(m.Submitted, submission)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(submission)
	}
	return model.WithdrawalRequest{
		ID:         MakeID(),
		ProjectRef: submission.ProjectRef,
		Amount:     submission.Amount,
		Status:     model.WithdrawalPending,
		Phase:      submission.Phase,
	}, nil
}
