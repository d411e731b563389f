package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/storegate/internal/claims"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// ClaimConfig configura el TenantClaimValidator.
type ClaimConfig struct {
	Routes *tenancy.Routes
	// Legacy habilita los nombres viejos del claim y el escaneo por "tenant".
	Legacy  bool
	Metrics *metrics.Metrics
}

// TenantClaim verifica que el principal pertenezca al tenant resuelto.
// Salta rutas exentas/open, requests anónimos y contextos sin resolver.
func TenantClaim(cfg ClaimConfig) Middleware {
	routes := cfg.Routes
	if routes == nil {
		routes = tenancy.DefaultRoutes()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !routes.RequiresMembership(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			p := GetPrincipal(r.Context())
			tenantID, resolved := tenancy.FromContext(r.Context()).TenantID()
			if p == nil || !resolved {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.From(r.Context())
			claimed, found, err := claims.TenantID(p.Raw, cfg.Legacy)
			switch {
			case !found:
				cfg.Metrics.Gate(GateClaim, metrics.OutcomeDeny, "missing_claim")
				log.Warn("token without tenant claim", logger.Gate(GateClaim), logger.Reason("missing_claim"))
				errors.WriteError(w, r, errors.ErrTokenMissingTenant)
				return
			case err != nil || claimed != tenantID:
				cfg.Metrics.Gate(GateClaim, metrics.OutcomeDeny, "tenant_mismatch")
				log.Warn("tenant claim mismatch",
					logger.Gate(GateClaim),
					logger.Reason("tenant_mismatch"),
					logger.String("claimed", claimed.String()),
				)
				errors.WriteError(w, r, errors.ErrTenantMismatch)
				return
			}
			cfg.Metrics.Gate(GateClaim, metrics.OutcomeAllow, "")
			next.ServeHTTP(w, r)
		})
	}
}
