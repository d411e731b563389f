package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// brandRepo aplica el Scope del request en cada operación. No expone
// ningún camino de lectura que no pase por scope().
type brandRepo struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]repository.Brand
}

func scope(ctx context.Context) (tenancy.Scope, error) {
	sc, err := tenancy.ScopeFrom(ctx)
	if err != nil {
		return tenancy.Scope{}, repository.ErrNoScope
	}
	return sc, sc.Check()
}

func (r *brandRepo) List(ctx context.Context) ([]repository.Brand, error) {
	sc, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]repository.Brand, 0, len(r.rows))
	for _, b := range r.rows {
		if sc.Allows(b.TenantID) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *brandRepo) Get(ctx context.Context, id uuid.UUID) (*repository.Brand, error) {
	sc, err := scope(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.rows[id]
	if !ok || !sc.Allows(b.TenantID) {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *brandRepo) Create(ctx context.Context, b *repository.Brand) error {
	sc, err := scope(ctx)
	if err != nil {
		return err
	}
	if err := sc.Stamp(b); err != nil {
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[b.ID]; exists || r.nameTaken(b.TenantID, b.Name, uuid.Nil) {
		return repository.ErrConflict
	}
	r.rows[b.ID] = *b
	return nil
}

func (r *brandRepo) Update(ctx context.Context, b *repository.Brand) error {
	sc, err := scope(ctx)
	if err != nil {
		return err
	}
	if err := sc.Stamp(b); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[b.ID]
	if !ok || !sc.Allows(cur.TenantID) || cur.TenantID != b.TenantID {
		return repository.ErrNotFound
	}
	if r.nameTaken(b.TenantID, b.Name, b.ID) {
		return repository.ErrConflict
	}
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	r.rows[b.ID] = *b
	return nil
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sc, err := scope(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok || !sc.Allows(cur.TenantID) {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// nameTaken replica el índice único (tenant_id, lower(name)). Requiere r.mu.
func (r *brandRepo) nameTaken(tenantID uuid.UUID, name string, except uuid.UUID) bool {
	for id, row := range r.rows {
		if id != except && row.TenantID == tenantID && strings.EqualFold(row.Name, name) {
			return true
		}
	}
	return false
}
