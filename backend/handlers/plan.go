// ABOUTME: HTTP handler for full pool plans
// ABOUTME: Caches plans by request hash and collapses concurrent duplicates

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/tenant-pool-sizer/backend/cache"
	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
)

// PlanPool runs the sizing pipeline for one pool.
// Responses carry X-Cache: HIT when served from the plan cache.
func (h *Handler) PlanPool(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := services.ValidatePlanRequest(req); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Re-encoding the decoded struct gives a canonical form: field order is
	// fixed and unknown fields are gone.
	canonical, err := json.Marshal(req)
	if err != nil {
		slog.Error("Failed to encode plan request", "error", err)
		h.writeError(w, "Failed to encode plan request", http.StatusInternalServerError)
		return
	}
	key := cache.Key(canonical)

	if h.planCache != nil {
		if plan, ok := h.planCache.Get(key); ok {
			w.Header().Set("X-Cache", "HIT")
			h.writeJSON(w, http.StatusOK, plan)
			return
		}
	}

	v, err, shared := h.planGroup.Do(strconv.FormatUint(key, 16), func() (any, error) {
		plan, err := h.planner.Plan(req)
		if err != nil {
			return nil, err
		}
		if h.planCache != nil {
			h.planCache.Set(key, plan)
		}
		return plan, nil
	})
	if err != nil {
		slog.Debug("Plan rejected", "pool", req.PoolName, "error", err)
		h.writeError(w, services.Message(err), statusFor(err))
		return
	}

	plan := v.(models.PlanResponse)
	slog.Info("Plan computed",
		"pool", plan.Pool.Name,
		"servers", plan.Pool.Servers,
		"volumes_per_server", plan.Pool.VolumesPerServer,
		"erasure_code", plan.SelectedEC,
		"shared", shared,
	)
	w.Header().Set("X-Cache", "MISS")
	h.writeJSON(w, http.StatusOK, plan)
}
