// Package directory resuelve slug -> tenant para el TenantResolver.
// Cachea solo datos de routing (id, slug, nombre) con TTL corto y deduplica
// lookups concurrentes del mismo slug con singleflight.
package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/storegate/internal/cache"
	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// Ref es la vista de routing de un tenant. No incluye Active: el flag de
// suspensión se lee siempre fresco en el gate de suscripción.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// Directory busca tenants por slug.
type Directory struct {
	tenants repository.TenantRepository
	cache   cache.Client // nil => sin cache
	ttl     time.Duration
	sf      singleflight.Group
}

// New crea un Directory. c puede ser nil.
func New(tenants repository.TenantRepository, c cache.Client, ttl time.Duration) *Directory {
	return &Directory{tenants: tenants, cache: c, ttl: ttl}
}

func cacheKey(slug string) string { return "tenant:slug:" + slug }

// lookupTimeout acota el lookup compartido: no depende del ctx de quien lo inició.
const lookupTimeout = 5 * time.Second

// Lookup busca por slug exacto. Retorna repository.ErrNotFound si no existe;
// cualquier otro error es del storage. Cada caller espera el lookup compartido
// hasta que su propio ctx se cancele.
func (d *Directory) Lookup(ctx context.Context, slug string) (*Ref, error) {
	if ref, ok := d.fromCache(ctx, slug); ok {
		return ref, nil
	}

	ch := d.sf.DoChan(slug, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		t, err := d.tenants.GetBySlug(sctx, slug)
		if err != nil {
			return nil, err
		}
		ref := &Ref{ID: t.ID, Slug: t.Slug, Name: t.Name}
		d.store(sctx, ref)
		return ref, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		ref := *res.Val.(*Ref)
		return &ref, nil
	}
}

// Invalidate borra la entrada de un slug (ej: renombre desde el panel de plataforma).
func (d *Directory) Invalidate(ctx context.Context, slug string) error {
	if d.cache == nil {
		return nil
	}
	return d.cache.Delete(ctx, cacheKey(slug))
}

func (d *Directory) fromCache(ctx context.Context, slug string) (*Ref, bool) {
	if d.cache == nil {
		return nil, false
	}
	b, err := d.cache.Get(ctx, cacheKey(slug))
	if err != nil {
		if !cache.IsNotFound(err) {
			logger.From(ctx).Warn("tenant cache get failed", logger.TenantSlug(slug), logger.Err(err))
		}
		return nil, false
	}
	var ref Ref
	if err := json.Unmarshal(b, &ref); err != nil || ref.ID == uuid.Nil {
		return nil, false
	}
	return &ref, true
}

func (d *Directory) store(ctx context.Context, ref *Ref) {
	if d.cache == nil {
		return
	}
	b, err := json.Marshal(ref)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, cacheKey(ref.Slug), b, d.ttl); err != nil {
		logger.From(ctx).Warn("tenant cache set failed", logger.TenantSlug(ref.Slug), logger.Err(err))
	}
}
