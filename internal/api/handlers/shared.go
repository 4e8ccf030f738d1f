package handlers

import (
	"errors"
	"net/http"

	"github.com/loopital/ledger-backend/internal/api/response"
	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/ledger"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// Business rejections become 422 with the reason attached; missing entities
// become 404; upstream outages become 502; everything else is a 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var rejection *ledger.RejectionError
	switch {
	case errors.As(err, &rejection):
		response.RespondError(w, http.StatusUnprocessableEntity, "withdrawal rejected", string(rejection.Reason))
	case errors.Is(err, apperrors.ErrProjectNotFound),
		errors.Is(err, apperrors.ErrInvestmentNotFound),
		errors.Is(err, apperrors.ErrWithdrawalRequestNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound):
		response.RespondError(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		response.RespondError(w, http.StatusBadGateway, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
