package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/qaz17899/game-hub/internal/ledger"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/metrics"
	"github.com/qaz17899/game-hub/internal/storage"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz provides a readiness check that validates storage
// connectivity and the ledger's fallback state. A degraded ledger still
// serves traffic, so it reports ok with a note rather than failing.
func HandleReadyz(store storage.Store, ledgerSvc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("Readiness check failed", "error", err)
			metrics.StorageDegraded.Set(1)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "storage connection failed",
			})
			return
		}

		if ledgerSvc.Degraded() {
			metrics.StorageDegraded.Set(1)
			respondJSON(w, http.StatusOK, HealthResponse{
				Status:  "ok",
				Message: "wallet running on in-memory fallback",
			})
			return
		}

		metrics.StorageDegraded.Set(0)
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
