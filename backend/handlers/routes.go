// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Units
		{Method: http.MethodPost, Path: "/api/v1/units/bytes", Handler: h.ConvertToBytes},
		{Method: http.MethodPost, Path: "/api/v1/units/human", Handler: h.ConvertToHuman},

		// Sizing
		{Method: http.MethodPost, Path: "/api/v1/memory/sizing", Handler: h.SizeMemory},
		{Method: http.MethodPost, Path: "/api/v1/pool/distribution", Handler: h.Distribute},
		{Method: http.MethodPost, Path: "/api/v1/pool/erasure-code", Handler: h.ErasureCode},
		{Method: http.MethodGet, Path: "/api/v1/pool/parity", Handler: h.ParityLevels},
		{Method: http.MethodPost, Path: "/api/v1/pool/plan", Handler: h.PlanPool},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
