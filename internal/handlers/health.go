package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/venturegrill/api/internal/database"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	store database.Gateway
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(store database.Gateway) *HealthChecker {
	return &HealthChecker{store: store}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. Basic mode only confirms the
// process serves requests; ?mode=extended also probes the database.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	statusCode := http.StatusOK

	if mode == "extended" {
		checks := make(map[string]string)

		if h.store != nil && h.store.HealthCheck(r.Context()) {
			checks["database"] = "healthy"
		} else {
			checks["database"] = "unhealthy"
			response.Status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}

		response.Checks = checks
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
