package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopital/ledger-backend/internal/api/response"
	"github.com/loopital/ledger-backend/internal/service"
)

// WithdrawalHandler handles withdrawal-related HTTP requests
type WithdrawalHandler struct {
	withdrawalService *service.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler
func NewWithdrawalHandler(withdrawalService *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Available returns the withdrawal balance view for one project.
//
// Endpoint: GET /api/projects/{projectRef}/withdrawals/available
// Response: 200 OK with service.BalanceView
// Error: 404 Not Found when neither identifier matches a project
func (h *WithdrawalHandler) Available(w http.ResponseWriter, r *http.Request) {
	projectRef := chi.URLParam(r, "projectRef")
	if projectRef == "" {
		response.RespondError(w, http.StatusBadRequest, "project reference is required", "")
		return
	}

	view, err := h.withdrawalService.GetBalance(projectRef)
	if err != nil {
		respondServiceError(w, "failed to compute withdrawal balance", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, view)
}

// SubmitWithdrawalRequest is the POST body for creating a withdrawal request.
type SubmitWithdrawalRequest struct {
	Amount float64 `json:"amount"`
}

// Submit validates and forwards a new withdrawal request.
//
// Endpoint: POST /api/projects/{projectRef}/withdrawals
// Response: 201 Created with the recorded request
// Error: 422 Unprocessable Entity with the rejection reason when validation fails
func (h *WithdrawalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	projectRef := chi.URLParam(r, "projectRef")
	if projectRef == "" {
		response.RespondError(w, http.StatusBadRequest, "project reference is required", "")
		return
	}

	var body SubmitWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.withdrawalService.Submit(r.Context(), projectRef, body.Amount)
	if err != nil {
		respondServiceError(w, "failed to submit withdrawal request", err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, created)
}

// List returns all withdrawal requests in the current snapshot.
//
// Endpoint: GET /api/withdrawals
func (h *WithdrawalHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.withdrawalService.GetRequests()
	if err != nil {
		respondServiceError(w, "failed to retrieve withdrawal requests", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, requests)
}

// Request returns a single withdrawal request by its UUID.
//
// Endpoint: GET /api/withdrawals/{uuid}
// Error: 404 Not Found when the request does not exist
func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	request, err := h.withdrawalService.GetRequest(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve withdrawal request", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, request)
}
