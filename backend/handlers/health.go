// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports liveness, plan cache size and the configured default parity

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// Health returns API health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC(),
		DefaultParity: h.defaultParity(),
	}
	if h.planCache != nil {
		resp.CachedPlans = h.planCache.Len()
	}

	h.writeJSON(w, http.StatusOK, resp)
}
