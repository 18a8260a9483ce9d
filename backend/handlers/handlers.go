// ABOUTME: HTTP handlers for the storage pool sizing API
// ABOUTME: Shared handler state plus JSON request and response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/tenant-pool-sizer/backend/cache"
	"github.com/markalston/tenant-pool-sizer/backend/config"
	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
)

type Handler struct {
	cfg       *config.Config
	planCache *cache.Cache[models.PlanResponse]
	planner   *services.PoolPlanner
	planGroup singleflight.Group
}

// NewHandler creates the API handlers. cfg and planCache may be nil; plans
// are then computed on every request with the built-in default parity.
func NewHandler(cfg *config.Config, planCache *cache.Cache[models.PlanResponse]) *Handler {
	planner := services.NewPoolPlanner()
	if cfg != nil {
		planner.WithDefaultParity(cfg.DefaultParity)
	}
	return &Handler{
		cfg:       cfg,
		planCache: planCache,
		planner:   planner,
	}
}

func (h *Handler) defaultParity() string {
	if h.cfg != nil && h.cfg.DefaultParity != "" {
		return h.cfg.DefaultParity
	}
	return services.DefaultErasureCode
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads the request body into v. It writes the error response
// itself and reports whether the handler should continue.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps a sizing error to its HTTP status. Sizing rules the input
// breaks are 422; anything else is a server fault.
func statusFor(err error) int {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
