// ABOUTME: HTTP handlers for the individual sizing calculators
// ABOUTME: Unit conversion, memory sizing, distribution, erasure code and parity catalog

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
)

// ConvertToBytes converts a value/unit pair into a byte count.
func (h *Handler) ConvertToBytes(w http.ResponseWriter, r *http.Request) {
	var req models.BytesRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	bytes, err := services.BytesFromValueAndUnit(req.Value, req.Unit, req.PlatformUnits)
	if err != nil {
		h.writeError(w, services.Message(err), statusFor(err))
		return
	}

	h.writeJSON(w, http.StatusOK, models.BytesResponse{Bytes: strconv.FormatUint(bytes, 10)})
}

// ConvertToHuman formats a byte count with the largest fitting unit.
func (h *Handler) ConvertToHuman(w http.ResponseWriter, r *http.Request) {
	var req models.HumanRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, models.HumanResponse{
		Human: services.HumanStringFromBytes(req.Bytes, req.PlatformUnits),
	})
}

// SizeMemory validates a memory request and derives its limit.
func (h *Handler) SizeMemory(w http.ResponseWriter, r *http.Request) {
	var req models.MemorySizingRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	sizing, err := services.SizeMemory(req.MemoryGi, req.TotalCapacityBytes, req.MaxAvailableMemoryBytes)
	if err != nil {
		slog.Debug("Memory sizing rejected", "error", err)
		h.writeJSON(w, statusFor(err), models.MemorySizingResponse{Error: services.Message(err)})
		return
	}

	h.writeJSON(w, http.StatusOK, models.MemorySizingResponse{
		Request: sizing.Request,
		Limit:   sizing.Limit,
	})
}

// Distribute lays a pool out over servers and volumes.
func (h *Handler) Distribute(w http.ResponseWriter, r *http.Request) {
	var req models.DistributionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	dist, err := services.Distribute(req)
	if err != nil {
		slog.Debug("Distribution rejected", "error", err)
		h.writeJSON(w, statusFor(err), models.DistributionResponse{Error: services.Message(err)})
		return
	}

	h.writeJSON(w, http.StatusOK, models.DistributionResponse{StorageDistribution: dist})
}

// ErasureCode computes the usable capacity table for a layout.
func (h *Handler) ErasureCode(w http.ResponseWriter, r *http.Request) {
	var req models.ErasureCodeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := services.ErasureCodeCalc(req.ParityLevels, req.TotalDisks, req.PVSize, req.TotalNodes)
	if err != nil {
		slog.Debug("Erasure code calculation rejected", "error", err)
		h.writeJSON(w, statusFor(err), models.NewErasureCodeResponse(result, true))
		return
	}

	h.writeJSON(w, http.StatusOK, models.NewErasureCodeResponse(result, false))
}

// ParityLevels lists the parity levels valid for a server and drive count.
func (h *Handler) ParityLevels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	nodes, err := strconv.Atoi(query.Get("nodes"))
	if err != nil {
		h.writeError(w, "nodes must be an integer", http.StatusBadRequest)
		return
	}
	drives, err := strconv.Atoi(query.Get("drives_per_node"))
	if err != nil {
		h.writeError(w, "drives_per_node must be an integer", http.StatusBadRequest)
		return
	}

	levels, err := services.ParityLevels(nodes, drives)
	if err != nil {
		h.writeError(w, services.Message(err), statusFor(err))
		return
	}

	h.writeJSON(w, http.StatusOK, models.ParityResponse{
		Nodes:         nodes,
		DrivesPerNode: drives,
		ParityLevels:  levels,
	})
}
