package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/modstanding/internal/database"
	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CatalogProbe reports whether the punishment type catalog can be loaded
type CatalogProbe interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready once the database answers and the catalog loads.
// catalog may be nil.
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, catalog CatalogProbe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		log := logger.FromContext(ctx)

		if err := dbPool.Ping(ctx); err != nil {
			log.Error("Readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database connection failed",
			})
			return
		}

		if catalog != nil {
			if _, err := catalog.Catalog(ctx); err != nil {
				log.Error("Readiness check failed", "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: "punishment type catalog unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
