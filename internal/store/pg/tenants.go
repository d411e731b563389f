package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// TenantRepo lee la tabla tenants. Ambas consultas usan índice (slug único / PK).
type TenantRepo struct{ q querier }

const tenantColumns = `id, slug, name, active, created_at, updated_at`

func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*repository.Tenant, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
	return scanTenant(row)
}

func (r *TenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Tenant, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func scanTenant(row pgx.Row) (*repository.Tenant, error) {
	var t repository.Tenant
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: scan tenant: %w", err)
	}
	return &t, nil
}
