package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant representa una tienda (cliente) de la plataforma.
type Tenant struct {
	ID   uuid.UUID
	Slug string
	Name string
	// Active es un switch de suspensión independiente del estado de la suscripción.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantRepository define las lecturas sobre tenants.
// Ambas consultas deben estar respaldadas por índice (slug único, PK).
type TenantRepository interface {
	// GetBySlug busca un tenant por slug exacto. Retorna ErrNotFound si no existe.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// GetByID busca un tenant por su UUID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
}
