package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/dropDatabas3/storegate/internal/directory"
	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// TenantLookup resuelve un slug exacto. repository.ErrNotFound => no existe.
type TenantLookup interface {
	Lookup(ctx context.Context, slug string) (*directory.Ref, error)
}

// WithTenantContext crea un TenantContext vacío por request.
func WithTenantContext() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := tenancy.WithContext(r.Context(), tenancy.New())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolverConfig configura el TenantResolver.
type ResolverConfig struct {
	Header  string // default X-Tenant-Slug
	Routes  *tenancy.Routes
	Lookup  TenantLookup
	Metrics *metrics.Metrics
}

// TenantResolver lee el slug del header y puebla el TenantContext.
//   - ruta exenta: pasa sin header.
//   - header ausente/vacío: 400, sin lookup.
//   - slug desconocido: el contexto queda sin resolver y sigue.
//   - error de storage: 503 (nunca se degrada a "global").
func TenantResolver(cfg ResolverConfig) Middleware {
	header := cfg.Header
	if header == "" {
		header = "X-Tenant-Slug"
	}
	routes := cfg.Routes
	if routes == nil {
		routes = tenancy.DefaultRoutes()
	}
	missing := errors.TenantHeaderRequired(header)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !routes.RequiresResolution(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			tc := tenancy.FromContext(ctx)
			if tc == nil {
				tc = tenancy.New()
				ctx = tenancy.WithContext(ctx, tc)
			}

			slug := strings.TrimSpace(r.Header.Get(header))
			if slug == "" {
				cfg.Metrics.Gate(GateResolver, metrics.OutcomeDeny, "missing_header")
				logger.From(ctx).Info("tenant header missing", logger.Gate(GateResolver))
				errors.WriteError(w, r, missing)
				return
			}

			ref, err := cfg.Lookup.Lookup(ctx, slug)
			switch {
			case err == nil:
				if rerr := tc.Resolve(ref.ID, ref.Slug); rerr != nil && rerr != tenancy.ErrAlreadyResolved {
					errors.WriteError(w, r, errors.ErrInternalServerError.WithCause(rerr))
					return
				}
				cfg.Metrics.TenantLookup("found")
				ctx = logger.Enrich(ctx, logger.TenantID(ref.ID.String()), logger.TenantSlug(ref.Slug))
			case repository.IsNotFound(err):
				cfg.Metrics.TenantLookup("not_found")
				logger.From(ctx).Debug("unknown tenant slug", logger.TenantSlug(slug))
			default:
				cfg.Metrics.TenantLookup("error")
				cfg.Metrics.Gate(GateResolver, metrics.OutcomeError, "lookup_failed")
				errors.WriteError(w, r, errors.ErrServiceUnavailable.WithCause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant corta con 404 las rutas tenant-scoped cuyo tenant no se resolvió.
// Rutas open y exentas toleran el contexto vacío.
func RequireTenant(routes *tenancy.Routes, m *metrics.Metrics) Middleware {
	if routes == nil {
		routes = tenancy.DefaultRoutes()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if routes.Classify(r.URL.Path) == tenancy.ClassTenant && !tenancy.FromContext(r.Context()).Resolved() {
				m.Gate(GateTenant, metrics.OutcomeDeny, "tenant_not_found")
				errors.WriteError(w, r, errors.ErrTenantNotFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
