package handlers

import (
	"net/http"
	"time"

	"github.com/loopital/ledger-backend/internal/api/response"
	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService  *service.SystemService
	refreshService *service.RefreshService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, refreshService *service.RefreshService) *SystemHandler {
	return &SystemHandler{
		systemService:  systemService,
		refreshService: refreshService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string     `json:"status"`
	Database    string     `json:"database"`
	LastRefresh *time.Time `json:"lastRefresh,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	if snapshot, err := h.systemService.LastRefresh(); err == nil {
		resp.LastRefresh = &snapshot.FetchedAt
	} else if err != apperrors.ErrSnapshotNotFound {
		resp.Error = err.Error()
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionResponse represents the version check response
type VersionResponse struct {
	Version string `json:"version"`
}

// Version returns the running application version.
//
// Endpoint: GET /api/system/version
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionResponse{
		Version: h.systemService.CheckVersion(),
	})
}

// Refresh triggers an immediate snapshot refresh outside the polling
// schedule.
//
// Endpoint: POST /api/system/refresh (API-key gated)
// Response: 200 OK with the new snapshot stamp
func (h *SystemHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		respondServiceError(w, "refresh failed", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, snapshot)
}
