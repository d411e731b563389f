// Package middlewares implementa la cadena HTTP de storegate:
//
//	RequestID -> Recover -> Logging -> TenantContext -> TenantResolver ->
//	Authenticate -> TenantClaim -> RequireTenant -> Subscription -> (router) -> Permission
//
// Todos los gates usan el mismo clasificador de rutas (tenancy.Routes) y
// responden con el contrato de error de internal/http/errors.
package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain aplica middlewares en orden de izquierda a derecha.
// Chain(h, A, B, C) ejecuta: A -> B -> C -> h
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Gate names, usados en logs y métricas.
const (
	GateResolver     = "resolver"
	GateAuth         = "auth"
	GateClaim        = "claim"
	GateTenant       = "tenant"
	GateSubscription = "subscription"
	GatePermission   = "permission"
)
