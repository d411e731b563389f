package repository

import "errors"

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (ej: slug duplicado).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoScope indica que se intentó acceder a una entidad tenant-scoped
	// sin un Scope emitido por el TenantContext del request.
	ErrNoScope = errors.New("tenant scope required")

	// ErrTenantRequired indica un insert de entidad tenant-scoped sin tenant
	// resoluble (ni preseteado ni en el contexto).
	ErrTenantRequired = errors.New("tenant id required for tenant-scoped entity")

	// ErrTenantMismatch indica que la entidad trae un tenant distinto al del contexto.
	ErrTenantMismatch = errors.New("entity tenant does not match request tenant")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsIsolationError verifica si el error proviene del filtro de aislamiento por tenant.
func IsIsolationError(err error) bool {
	return errors.Is(err, ErrNoScope) || errors.Is(err, ErrTenantRequired) || errors.Is(err, ErrTenantMismatch)
}
