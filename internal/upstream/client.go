// Package upstream talks to the remote marketplace backend that owns all
// investment, project, withdrawal, and transaction records. The client
// normalizes field-name casing at the boundary so nothing downstream ever
// sees snake_case/camelCase inconsistencies.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/model"
)

// Client is the read/submit surface of the marketplace backend used by the
// ledger service. Implementations must be safe for concurrent use.
type Client interface {
	FetchInvestments(ctx context.Context) ([]model.Investment, error)
	FetchProjects(ctx context.Context) ([]model.Project, error)
	FetchWithdrawalRequests(ctx context.Context) ([]model.WithdrawalRequest, error)
	FetchTransactions(ctx context.Context) ([]model.Transaction, error)
	SubmitWithdrawal(ctx context.Context, submission WithdrawalSubmission) (model.WithdrawalRequest, error)
}

// WithdrawalSubmission is the payload forwarded to the marketplace when a
// validated owner withdrawal request is created.
type WithdrawalSubmission struct {
	ProjectRef string  `json:"projectRef"`
	Amount     float64 `json:"amount"`
	Phase      int     `json:"phase"`
}

// MarketplaceClient is the HTTP implementation of Client.
type MarketplaceClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewMarketplaceClient creates a client for the marketplace REST API.
// The token is sent as a bearer credential on every request.
func NewMarketplaceClient(baseURL, token string) *MarketplaceClient {
	return &MarketplaceClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchInvestments retrieves the investor's funding rounds, including
// embedded payouts and, where the backend supplies one, an embedded project.
func (c *MarketplaceClient) FetchInvestments(ctx context.Context) ([]model.Investment, error) {
	records, err := c.getList(ctx, "/api/v1/investments")
	if err != nil {
		return nil, err
	}
	investments := make([]model.Investment, len(records))
	for i, r := range records {
		investments[i] = normalizeInvestment(r)
	}
	return investments, nil
}

// FetchProjects retrieves all projects visible to the account.
func (c *MarketplaceClient) FetchProjects(ctx context.Context) ([]model.Project, error) {
	records, err := c.getList(ctx, "/api/v1/projects")
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, len(records))
	for i, r := range records {
		projects[i] = normalizeProject(r)
	}
	return projects, nil
}

// FetchWithdrawalRequests retrieves owner withdrawal requests across all of
// the account's projects.
func (c *MarketplaceClient) FetchWithdrawalRequests(ctx context.Context) ([]model.WithdrawalRequest, error) {
	records, err := c.getList(ctx, "/api/v1/withdrawals")
	if err != nil {
		return nil, err
	}
	requests := make([]model.WithdrawalRequest, len(records))
	for i, r := range records {
		requests[i] = normalizeWithdrawalRequest(r)
	}
	return requests, nil
}

// FetchTransactions retrieves the wallet transaction history.
func (c *MarketplaceClient) FetchTransactions(ctx context.Context) ([]model.Transaction, error) {
	records, err := c.getList(ctx, "/api/v1/transactions")
	if err != nil {
		return nil, err
	}
	transactions := make([]model.Transaction, len(records))
	for i, r := range records {
		transactions[i] = normalizeTransaction(r)
	}
	return transactions, nil
}

// SubmitWithdrawal forwards a validated withdrawal request to the
// marketplace and returns the created request as the backend recorded it.
func (c *MarketplaceClient) SubmitWithdrawal(ctx context.Context, submission WithdrawalSubmission) (model.WithdrawalRequest, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return model.WithdrawalRequest{}, fmt.Errorf("failed to encode withdrawal submission: %w", err)
	}

	url := c.baseURL + "/api/v1/withdrawals"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return model.WithdrawalRequest{}, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.WithdrawalRequest{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return model.WithdrawalRequest{}, fmt.Errorf("%w: submit returned status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.WithdrawalRequest{}, err
	}
	var record rawRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.WithdrawalRequest{}, fmt.Errorf("failed to parse submit response: %w", err)
	}
	return normalizeWithdrawalRequest(record), nil
}

// getList executes a GET request and decodes the response as a list of raw
// records ready for normalization.
func (c *MarketplaceClient) getList(ctx context.Context, path string) ([]rawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", apperrors.ErrUpstreamUnavailable, path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return records, nil
}

func (c *MarketplaceClient) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
}
