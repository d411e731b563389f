package middlewares

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dropDatabas3/storegate/internal/claims"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// Permissions mapea "METHOD /pattern" al conjunto de permisos requeridos (any-of).
type Permissions map[string][]string

// RouteKey arma la clave de Permissions.
func RouteKey(method, pattern string) string {
	return strings.ToUpper(method) + " " + pattern
}

// PermissionGate es el interceptor genérico de capacidades por endpoint.
type PermissionGate struct {
	perms   Permissions
	metrics *metrics.Metrics
}

func NewPermissionGate(perms Permissions, m *metrics.Metrics) *PermissionGate {
	return &PermissionGate{perms: perms, metrics: m}
}

// Required retorna los permisos declarados para method+pattern.
func (g *PermissionGate) Required(method, pattern string) ([]string, bool) {
	req, ok := g.perms[RouteKey(method, pattern)]
	return req, ok
}

// Keys retorna las rutas declaradas, ordenadas.
func (g *PermissionGate) Keys() []string {
	out := make([]string, 0, len(g.perms))
	for k := range g.perms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Wrap protege h. Anónimo => 401; rol Owner => pasa; si no, el principal debe
// tener alguno de los permisos declarados. Una ruta sin declaración solo
// admite Owners.
func (g *PermissionGate) Wrap(method, pattern string, h http.Handler) http.Handler {
	key := RouteKey(method, pattern)
	required, declared := g.perms[key]
	if !declared {
		logger.L().Warn("route without permission declaration, owners only", logger.Route(key))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r.Context())
		if p == nil {
			g.metrics.Gate(GatePermission, metrics.OutcomeDeny, "unauthenticated")
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			errors.WriteError(w, r, errors.ErrUnauthorized)
			return
		}
		if p.IsOwner() || (declared && len(required) == 0) || p.HasAny(required...) {
			g.metrics.Gate(GatePermission, metrics.OutcomeAllow, "")
			h.ServeHTTP(w, r)
			return
		}

		g.metrics.Gate(GatePermission, metrics.OutcomeDeny, "insufficient_permissions")
		logger.From(r.Context()).Warn("permission denied",
			logger.Gate(GatePermission),
			logger.Route(key),
			logger.Any("required", required),
		)
		errors.WriteError(w, r, errors.ErrInsufficientPermissions)
	})
}

// WrapPlatform protege rutas de plataforma. No hay bypass de Owner: el token
// no puede estar ligado a una tienda y debe traer alguno de los permisos
// declarados. Una ruta sin declaración queda cerrada.
func (g *PermissionGate) WrapPlatform(method, pattern string, legacy bool, h http.Handler) http.Handler {
	key := RouteKey(method, pattern)
	required := g.perms[key]
	if len(required) == 0 {
		logger.L().Warn("platform route without permission declaration, closed", logger.Route(key))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r.Context())
		if p == nil {
			g.metrics.Gate(GatePermission, metrics.OutcomeDeny, "unauthenticated")
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			errors.WriteError(w, r, errors.ErrUnauthorized)
			return
		}
		if _, bound := claims.TenantClaim(p.Raw, legacy); bound {
			g.metrics.Gate(GatePermission, metrics.OutcomeDeny, "tenant_bound_principal")
			logger.From(r.Context()).Warn("platform route with tenant-bound token",
				logger.Gate(GatePermission),
				logger.Route(key),
			)
			errors.WriteError(w, r, errors.ErrInsufficientPermissions)
			return
		}
		if len(required) > 0 && p.HasAny(required...) {
			g.metrics.Gate(GatePermission, metrics.OutcomeAllow, "")
			h.ServeHTTP(w, r)
			return
		}

		g.metrics.Gate(GatePermission, metrics.OutcomeDeny, "insufficient_permissions")
		logger.From(r.Context()).Warn("permission denied",
			logger.Gate(GatePermission),
			logger.Route(key),
			logger.Any("required", required),
		)
		errors.WriteError(w, r, errors.ErrInsufficientPermissions)
	})
}
