// Package router arma el árbol chi con la cadena de gates de tenancy.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/http/handlers"
	mw "github.com/dropDatabas3/storegate/internal/http/middlewares"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// Deps contiene todo lo que el router necesita.
type Deps struct {
	Routes       *tenancy.Routes
	TenantHeader string
	Lookup       mw.TenantLookup
	Verifier     mw.TokenVerifier
	Subscription mw.SubscriptionChecker
	LegacyClaims bool
	Permissions  *mw.PermissionGate
	Metrics      *metrics.Metrics
	CORSOrigins  []string

	Brands     *handlers.BrandsHandler
	Storefront *handlers.StorefrontHandler
	Platform   *handlers.PlatformHandler
	Health     *handlers.HealthHandler
}

// DefaultPermissions declara la capacidad requerida por endpoint (any-of).
// Rutas no declaradas solo admiten Owners; las de plataforma quedan cerradas.
func DefaultPermissions() mw.Permissions {
	return mw.Permissions{
		"GET /brands":                               {"brands.read", "brands.write"},
		"GET /brands/{id}":                          {"brands.read", "brands.write"},
		"POST /brands":                              {"brands.write"},
		"PUT /brands/{id}":                          {"brands.write"},
		"DELETE /brands/{id}":                       {"brands.write"},
		"GET /platform/tenants/{slug}/subscription": {"platform.tenants.read"},
	}
}

// New construye el handler raíz. Orden de la cadena:
//
//	RequestID → Recover → TenantContext → Logging → Metrics → CORS → NoStore
//	→ TenantResolver → Authenticate → TenantClaim → RequireTenant
//	→ SubscriptionGate → (ruta) → PermissionGate → handler
func New(d Deps) http.Handler {
	routes := d.Routes
	if routes == nil {
		routes = tenancy.DefaultRoutes()
	}
	perms := d.Permissions
	if perms == nil {
		perms = mw.NewPermissionGate(DefaultPermissions(), d.Metrics)
	}

	r := chi.NewRouter()

	r.Use(
		mw.WithRequestID(),
		mw.WithRecover(),
		mw.WithTenantContext(),
		mw.WithLogging(),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(corsOptions(d.CORSOrigins, d.TenantHeader)))
	r.Use(
		mw.WithNoStore(),
		mw.TenantResolver(mw.ResolverConfig{
			Header:  d.TenantHeader,
			Routes:  routes,
			Lookup:  d.Lookup,
			Metrics: d.Metrics,
		}),
		mw.Authenticate(d.Verifier, d.Metrics),
		mw.TenantClaim(mw.ClaimConfig{Routes: routes, Legacy: d.LegacyClaims, Metrics: d.Metrics}),
		mw.RequireTenant(routes, d.Metrics),
		mw.SubscriptionGate(routes, d.Subscription, d.Metrics),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, errors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, errors.New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed."))
	})

	// handle registra una ruta protegida por el PermissionGate con su misma clave.
	handle := func(method, pattern string, h http.HandlerFunc) {
		r.Method(method, pattern, perms.Wrap(method, pattern, h))
	}

	// ─── Exentas ───
	if d.Health != nil {
		r.Get("/health", d.Health.Healthz)
		r.Get("/healthz", d.Health.Healthz)
		r.Get("/readyz", d.Health.Readyz)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	if d.Platform != nil {
		const pattern = "/platform/tenants/{slug}/subscription"
		r.Method(http.MethodGet, pattern, perms.WrapPlatform(http.MethodGet, pattern, d.LegacyClaims, http.HandlerFunc(d.Platform.SubscriptionStatus)))
	}

	// ─── Open (header requerido, sin membresía) ───
	if d.Storefront != nil {
		r.Get("/public/store", d.Storefront.Store)
	}

	// ─── Tenant-scoped ───
	if d.Brands != nil {
		handle(http.MethodGet, "/brands", d.Brands.List)
		handle(http.MethodPost, "/brands", d.Brands.Create)
		handle(http.MethodGet, "/brands/{id}", d.Brands.Get)
		handle(http.MethodPut, "/brands/{id}", d.Brands.Update)
		handle(http.MethodDelete, "/brands/{id}", d.Brands.Delete)
	}

	return r
}

func corsOptions(origins []string, tenantHeader string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	if tenantHeader == "" {
		tenantHeader = "X-Tenant-Slug"
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", tenantHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
