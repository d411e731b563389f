package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/dto/platform"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/http/helpers"
	"github.com/dropDatabas3/storegate/internal/subscription"
)

// SubscriptionEvaluator calcula el estado efectivo de un tenant.
type SubscriptionEvaluator interface {
	Evaluate(ctx context.Context, tenantID uuid.UUID) (*repository.Tenant, subscription.Evaluation, error)
	Policy() subscription.NoSubscriptionPolicy
}

// PlatformHandler expone lecturas de plataforma (cross-tenant, sin header).
type PlatformHandler struct {
	Tenants repository.TenantRepository
	Gate    SubscriptionEvaluator
}

func NewPlatformHandler(tenants repository.TenantRepository, gate SubscriptionEvaluator) *PlatformHandler {
	return &PlatformHandler{Tenants: tenants, Gate: gate}
}

// SubscriptionStatus maneja GET /platform/tenants/{slug}/subscription.
// Solo lectura: reporta el estado efectivo calculado ahora.
func (h *PlatformHandler) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		errors.WriteError(w, r, errors.ErrInvalidParameter.WithDetail("slug is required"))
		return
	}

	t, err := h.Tenants.GetBySlug(r.Context(), slug)
	if err != nil {
		if repository.IsNotFound(err) {
			errors.WriteError(w, r, errors.ErrTenantNotFound)
			return
		}
		errors.WriteError(w, r, errors.ErrServiceUnavailable.WithCause(err))
		return
	}

	t, ev, err := h.Gate.Evaluate(r.Context(), t.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			errors.WriteError(w, r, errors.ErrTenantNotFound)
			return
		}
		errors.WriteError(w, r, errors.ErrServiceUnavailable.WithCause(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, platform.SubscriptionStatusResponse{
		Success: true,
		Tenant: platform.TenantInfo{
			ID:     t.ID.String(),
			Slug:   t.Slug,
			Name:   t.Name,
			Active: t.Active,
		},
		Persisted: string(ev.Persisted),
		Effective: string(ev.Effective),
		Access:    ev.Access.String(),
		Policy:    string(h.Gate.Policy()),
	})
}
