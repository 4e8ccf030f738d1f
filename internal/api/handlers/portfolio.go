package handlers

import (
	"net/http"

	"github.com/loopital/ledger-backend/internal/api/response"
	"github.com/loopital/ledger-backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolio returns the grouped investments, aggregate summary, and next
// upcoming payout derived from the current snapshot.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with service.PortfolioView
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		respondServiceError(w, "failed to derive portfolio", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, view)
}

// NextPayout returns the earliest pending future payout across the whole
// portfolio, or 204 when none exists.
//
// Endpoint: GET /api/portfolio/next-payout
func (h *PortfolioHandler) NextPayout(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		respondServiceError(w, "failed to derive portfolio", err)
		return
	}
	if view.NextPayout == nil {
		response.RespondJSON(w, http.StatusNoContent, nil)
		return
	}
	response.RespondJSON(w, http.StatusOK, view.NextPayout)
}

// Schedule returns the future payout schedule, including projected term-end
// entries flagged as such.
//
// Endpoint: GET /api/portfolio/schedule
func (h *PortfolioHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.portfolioService.GetUpcomingSchedule(r.Context())
	if err != nil {
		respondServiceError(w, "failed to derive payout schedule", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, schedule)
}
