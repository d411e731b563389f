package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// BrandRepo opera sobre brands. Toda lectura/escritura pasa por scopedQuery
// o por Scope.Stamp; no hay variante sin filtro.
type BrandRepo struct{ q querier }

const brandColumns = `id, tenant_id, name, created_at, updated_at`

func (r *BrandRepo) List(ctx context.Context) ([]repository.Brand, error) {
	sc, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	q, err := newScopedQuery(sc, "brands")
	if err != nil {
		return nil, err
	}
	sql, args := q.selectSQL(brandColumns, "created_at, id")
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list brands: %w", err)
	}
	defer rows.Close()

	var out []repository.Brand
	for rows.Next() {
		var b repository.Brand
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BrandRepo) Get(ctx context.Context, id uuid.UUID) (*repository.Brand, error) {
	sc, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	q, err := newScopedQuery(sc, "brands")
	if err != nil {
		return nil, err
	}
	sql, args := q.eq("id", id).selectSQL(brandColumns, "")

	var b repository.Brand
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.TenantID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) Create(ctx context.Context, b *repository.Brand) error {
	sc, err := scopeFrom(ctx)
	if err != nil {
		return err
	}
	// el tenant se estampa acá, al guardar
	if err := sc.Stamp(b); err != nil {
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	_, err = r.q.Exec(ctx,
		`INSERT INTO brands (`+brandColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.TenantID, b.Name, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("pg: insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) Update(ctx context.Context, b *repository.Brand) error {
	sc, err := scopeFrom(ctx)
	if err != nil {
		return err
	}
	if err := sc.Stamp(b); err != nil {
		return err
	}
	q, err := newScopedQuery(sc, "brands")
	if err != nil {
		return err
	}
	b.UpdatedAt = time.Now().UTC()
	sql, args := q.eq("id", b.ID).eq("tenant_id", b.TenantID).
		updateSQL([]string{"name", "updated_at"}, []any{b.Name, b.UpdatedAt})

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("pg: update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sc, err := scopeFrom(ctx)
	if err != nil {
		return err
	}
	q, err := newScopedQuery(sc, "brands")
	if err != nil {
		return err
	}
	sql, args := q.eq("id", id).deleteSQL()
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("pg: delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
