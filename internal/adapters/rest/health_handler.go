package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
	healthStatusDegraded  = "degraded"

	healthCheckUp   = "up"
	healthCheckDown = "down"
)

// healthResponse is the body of both probe endpoints.
type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version string
	pool    *pgxpool.Pool // For readiness check
}

func NewHealthHandler(base *BaseHandler, version string, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		pool:        pool,
	}
}

// GetLiveness implements the liveness probe endpoint. Lightweight, no
// external dependencies.
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    healthStatusHealthy,
		Timestamp: time.Now(),
		Version:   h.version,
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}

// GetReadiness implements the readiness probe endpoint. Checks database
// connectivity.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    healthStatusHealthy,
		Timestamp: time.Now(),
		Version:   h.version,
	}
	httpStatus := http.StatusOK

	if h.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.Ping(ctx); err != nil {
			response.Status = healthStatusUnhealthy
			response.Checks = map[string]string{"database": healthCheckDown}
			httpStatus = http.StatusServiceUnavailable
		} else {
			response.Checks = map[string]string{"database": healthCheckUp}
		}
	} else {
		response.Status = healthStatusDegraded
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}
