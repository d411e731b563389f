package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/storegate/internal/http/dto/health"
	"github.com/dropDatabas3/storegate/internal/http/helpers"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// Pinger es cualquier dependencia con health check (storage, cache).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler sirve /healthz (liveness) y /readyz (readiness).
type HealthHandler struct {
	Store   Pinger
	Cache   Pinger // nil => cache deshabilitado
	Version string
	Timeout time.Duration
}

// Healthz responde 200 mientras el proceso esté vivo.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pingea storage y cache. Storage caído => 503; cache caído también,
// porque el resolver depende de él para cada lookup.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	resp := health.ReadyResponse{
		Status:     "ready",
		Components: map[string]health.ComponentStatus{},
		Version:    h.Version,
		Timestamp:  time.Now().UTC(),
	}

	check := func(name string, p Pinger) {
		if p == nil {
			resp.Components[name] = health.ComponentStatus{Status: "disabled"}
			return
		}
		if err := p.Ping(ctx); err != nil {
			logger.From(r.Context()).Error("readiness check failed", logger.Component(name), logger.Err(err))
			resp.Components[name] = health.ComponentStatus{Status: "error", Message: err.Error()}
			resp.Status = "unavailable"
			return
		}
		resp.Components[name] = health.ComponentStatus{Status: "ok"}
	}
	check("store", h.Store)
	check("cache", h.Cache)

	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, status, resp)
}
