package tenancy

import (
	"path"
	"strings"
)

// RouteClass clasifica un path respecto al pipeline de tenancy.
type RouteClass int

const (
	// ClassTenant: ruta tenant-scoped, todos los gates aplican.
	ClassTenant RouteClass = iota
	// ClassOpen: login/auth y storefront público. Se resuelve el tenant
	// (header obligatorio) pero no se validan claims ni suscripción.
	ClassOpen
	// ClassExempt: plataforma, registro de tiendas, health, docs, estáticos.
	// Ningún gate de tenancy aplica y no se exige header.
	ClassExempt
)

func (c RouteClass) String() string {
	switch c {
	case ClassOpen:
		return "open"
	case ClassExempt:
		return "exempt"
	default:
		return "tenant"
	}
}

// DefaultExemptPrefixes son las rutas fuera de todo tenant.
var DefaultExemptPrefixes = []string{
	"/platform",
	"/admin",
	"/stores/register",
	"/health",
	"/healthz",
	"/readyz",
	"/metrics",
	"/docs",
	"/swagger",
	"/static",
}

// DefaultOpenPrefixes son las rutas que resuelven tenant pero no exigen membresía.
var DefaultOpenPrefixes = []string{
	"/auth",
	"/public",
}

// Routes es el clasificador único de rutas. TenantResolver, TenantClaimValidator y
// SubscriptionGate consultan la misma instancia, de modo que una ruta no puede
// quedar exenta en un gate y no en otro.
type Routes struct {
	exempt []string
	open   []string
}

// NewRoutes crea un clasificador. Listas vacías usan los defaults.
func NewRoutes(exempt, open []string) *Routes {
	if len(exempt) == 0 {
		exempt = DefaultExemptPrefixes
	}
	if len(open) == 0 {
		open = DefaultOpenPrefixes
	}
	return &Routes{exempt: normalizePrefixes(exempt), open: normalizePrefixes(open)}
}

// DefaultRoutes retorna el clasificador con los prefijos por defecto.
func DefaultRoutes() *Routes {
	return NewRoutes(nil, nil)
}

// Classify devuelve la clase del path. La comparación es por segmento
// ("/public" matchea "/public" y "/public/x", no "/publicity") y se hace
// sobre el path limpio para que "/platform/../brands" se trate como "/brands".
func (r *Routes) Classify(p string) RouteClass {
	p = cleanPath(p)
	if matchAny(p, r.exempt) {
		return ClassExempt
	}
	if matchAny(p, r.open) {
		return ClassOpen
	}
	return ClassTenant
}

// RequiresResolution indica si el TenantResolver debe correr (y exigir header).
func (r *Routes) RequiresResolution(p string) bool {
	return r.Classify(p) != ClassExempt
}

// RequiresMembership indica si corren TenantClaimValidator y SubscriptionGate.
func (r *Routes) RequiresMembership(p string) bool {
	return r.Classify(p) == ClassTenant
}

// ExemptPrefixes retorna una copia de los prefijos exentos.
func (r *Routes) ExemptPrefixes() []string { return append([]string(nil), r.exempt...) }

// OpenPrefixes retorna una copia de los prefijos abiertos.
func (r *Routes) OpenPrefixes() []string { return append([]string(nil), r.open...) }

func matchAny(p string, prefixes []string) bool {
	for _, pre := range prefixes {
		if pre == "/" {
			return true
		}
		if p == pre || strings.HasPrefix(p, pre+"/") {
			return true
		}
	}
	return false
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

func normalizePrefixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, cleanPath(p))
	}
	return out
}
