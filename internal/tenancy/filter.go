package tenancy

import (
	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// =================================================================================
// ROW ISOLATION FILTER
// =================================================================================

// Scope es el predicado de aislamiento que aplica el storage a toda entidad
// tenant-scoped. Solo se obtiene desde un TenantContext (Context.Scope / ScopeFrom);
// el valor cero es inválido y el storage lo rechaza.
type Scope struct {
	tenantID uuid.UUID
	bound    bool
	minted   bool
}

// Scope emite el Scope del contexto en su estado actual.
// Contexto no resuelto => Scope sin restricción (back-office cross-tenant).
func (c *Context) Scope() Scope {
	id, ok := c.TenantID()
	return Scope{tenantID: id, bound: ok, minted: true}
}

// Valid indica si el Scope fue emitido por un TenantContext.
func (s Scope) Valid() bool { return s.minted }

// TenantID retorna el tenant al que se restringe el Scope.
func (s Scope) TenantID() (uuid.UUID, bool) { return s.tenantID, s.bound }

// Restricted indica si las lecturas se intersectan con tenant_id.
func (s Scope) Restricted() bool { return s.bound }

// Check valida que el Scope sea utilizable.
func (s Scope) Check() error {
	if !s.minted {
		return repository.ErrNoScope
	}
	return nil
}

// Allows indica si una fila con el tenant dado es visible bajo este Scope.
func (s Scope) Allows(rowTenant uuid.UUID) bool {
	if !s.minted {
		return false
	}
	if !s.bound {
		return true
	}
	return rowTenant == s.tenantID
}

// Stamp asigna el tenant del Scope a una entidad al momento de guardarla.
//   - tenant vacío + Scope resuelto  => se estampa el tenant del Scope.
//   - tenant vacío + Scope no resuelto => ErrTenantRequired (nunca fila sin tenant).
//   - tenant preseteado distinto del Scope resuelto => ErrTenantMismatch.
func (s Scope) Stamp(e repository.TenantScoped) error {
	if err := s.Check(); err != nil {
		return err
	}
	current := e.GetTenantID()
	switch {
	case current == uuid.Nil && s.bound:
		e.SetTenantID(s.tenantID)
	case current == uuid.Nil:
		return repository.ErrTenantRequired
	case s.bound && current != s.tenantID:
		return repository.ErrTenantMismatch
	}
	return nil
}
