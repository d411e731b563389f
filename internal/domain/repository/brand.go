package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TenantScoped lo implementa toda entidad cuyas filas pertenecen a un tenant.
// El tenant se estampa al momento de guardar, no al construir la entidad.
type TenantScoped interface {
	GetTenantID() uuid.UUID
	SetTenantID(id uuid.UUID)
}

// Brand es una marca del catálogo. Entidad tenant-scoped de referencia.
type Brand struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Brand) GetTenantID() uuid.UUID   { return b.TenantID }
func (b *Brand) SetTenantID(id uuid.UUID) { b.TenantID = id }

// BrandRepository opera sobre marcas. Todas las operaciones se confinan
// al tenant del contexto del request; no existe variante "sin filtro".
type BrandRepository interface {
	List(ctx context.Context) ([]Brand, error)
	Get(ctx context.Context, id uuid.UUID) (*Brand, error)
	Create(ctx context.Context, b *Brand) error
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}
