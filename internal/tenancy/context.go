// Package tenancy contiene el TenantContext del request, el clasificador de rutas
// compartido por todos los gates y el filtro de aislamiento por fila.
package tenancy

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyResolved se retorna al intentar resolver dos veces el mismo contexto.
	ErrAlreadyResolved = errors.New("tenancy: tenant context already resolved")
	// ErrInvalidTenant se retorna al resolver con un id vacío.
	ErrInvalidTenant = errors.New("tenancy: invalid tenant id")
	// ErrNoTenantContext indica que el contexto no trae un TenantContext.
	ErrNoTenantContext = errors.New("tenancy: no tenant context")
)

// =================================================================================
// TENANT CONTEXT
// =================================================================================

// Context es el contenedor request-scoped del tenant resuelto.
// Se crea vacío al inicio del request, se puebla a lo sumo una vez y se descarta
// al terminar. Nunca se comparte entre requests.
type Context struct {
	mu       sync.RWMutex
	tenantID uuid.UUID
	slug     string
	resolved bool
}

// New crea un TenantContext vacío (no resuelto).
func New() *Context {
	return &Context{}
}

// Resolve puebla el contexto. Solo la primera llamada tiene efecto;
// las siguientes retornan ErrAlreadyResolved sin modificar nada.
func (c *Context) Resolve(id uuid.UUID, slug string) error {
	if id == uuid.Nil {
		return ErrInvalidTenant
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return ErrAlreadyResolved
	}
	c.tenantID = id
	c.slug = slug
	c.resolved = true
	return nil
}

// Resolved indica si el tenant fue resuelto.
func (c *Context) Resolved() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolved
}

// TenantID retorna el id del tenant y si está resuelto.
func (c *Context) TenantID() (uuid.UUID, bool) {
	if c == nil {
		return uuid.Nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tenantID, c.resolved
}

// Slug retorna el slug resuelto ("" si no está resuelto).
func (c *Context) Slug() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slug
}

// =================================================================================
// CONTEXT PROPAGATION
// =================================================================================

type ctxKey struct{}

// WithContext inyecta el TenantContext en ctx.
func WithContext(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext obtiene el TenantContext del contexto.
// Retorna nil si no hay (middleware no aplicado).
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	if tc, ok := ctx.Value(ctxKey{}).(*Context); ok {
		return tc
	}
	return nil
}

// ScopeFrom emite el Scope de aislamiento a partir del TenantContext de ctx.
// Sin TenantContext no hay Scope: el storage falla cerrado.
func ScopeFrom(ctx context.Context) (Scope, error) {
	tc := FromContext(ctx)
	if tc == nil {
		return Scope{}, ErrNoTenantContext
	}
	return tc.Scope(), nil
}
