package handlers

import (
	"net/http"

	"github.com/loopital/ledger-backend/internal/api/response"
	"github.com/loopital/ledger-backend/internal/service"
)

// ActivityHandler handles activity feed HTTP requests
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// Activities returns the normalized activity feed, newest first.
//
// Endpoint: GET /api/activities
func (h *ActivityHandler) Activities(w http.ResponseWriter, r *http.Request) {
	feed, err := h.activityService.GetActivityFeed()
	if err != nil {
		respondServiceError(w, "failed to build activity feed", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, feed)
}

// Export streams the activity feed as a CSV attachment.
//
// Endpoint: GET /api/activities/export
func (h *ActivityHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="activities.csv"`)

	if err := h.activityService.ExportActivityCSV(w); err != nil {
		// Headers may already be out; log-and-abort is all that is left.
		respondServiceError(w, "failed to export activity feed", err)
	}
}
