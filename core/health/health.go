// Package health provides HTTP handlers for service health monitoring.
// Liveness reports that the process runs; Readiness reuses the same
// dependency probes as the startup gate, so the two can never disagree
// about what "healthy" means.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/querypad/querypad/core/logger"
)

// Liveness indicates the process is running. No dependency checks.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// Readiness verifies all dependency probes succeed. Returns "READY" when
// they do, 503 Service Unavailable when any fails.
func Readiness(log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
