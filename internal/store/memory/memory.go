// Package memory implementa el storage en memoria. Útil para desarrollo y testing.
package memory

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// Store mantiene tenants, suscripciones y entidades tenant-scoped en memoria.
type Store struct {
	mu            sync.RWMutex
	tenants       map[uuid.UUID]repository.Tenant
	slugs         map[string]uuid.UUID
	subscriptions map[uuid.UUID][]repository.Subscription
	brands        *brandRepo
}

// New crea un Store vacío.
func New() *Store {
	s := &Store{
		tenants:       make(map[uuid.UUID]repository.Tenant),
		slugs:         make(map[string]uuid.UUID),
		subscriptions: make(map[uuid.UUID][]repository.Subscription),
	}
	s.brands = &brandRepo{rows: make(map[uuid.UUID]repository.Brand)}
	return s
}

func (s *Store) Tenants() repository.TenantRepository             { return tenantRepo{s} }
func (s *Store) Subscriptions() repository.SubscriptionRepository { return subscriptionRepo{s} }
func (s *Store) Brands() repository.BrandRepository               { return s.brands }
func (s *Store) Ping(context.Context) error                        { return nil }
func (s *Store) Close() error                                      { return nil }

// =================================================================================
// SEEDING (lo usa el flujo externo de onboarding en dev y los tests)
// =================================================================================

// PutTenant inserta o reemplaza un tenant. Retorna ErrConflict si el slug
// ya pertenece a otro tenant.
func (s *Store) PutTenant(t repository.Tenant) (repository.Tenant, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	slug := strings.TrimSpace(t.Slug)
	if slug == "" {
		return repository.Tenant{}, repository.ErrInvalidInput
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.slugs[slug]; ok && owner != t.ID {
		return repository.Tenant{}, repository.ErrConflict
	}
	if prev, ok := s.tenants[t.ID]; ok && prev.Slug != slug {
		delete(s.slugs, prev.Slug)
	}
	s.tenants[t.ID] = t
	s.slugs[slug] = t.ID
	return t, nil
}

// AddSubscription agrega una fila de suscripción al historial del tenant.
func (s *Store) AddSubscription(sub repository.Subscription) (repository.Subscription, error) {
	if sub.TenantID == uuid.Nil {
		return repository.Subscription{}, repository.ErrInvalidInput
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[sub.TenantID]; !ok {
		return repository.Subscription{}, repository.ErrNotFound
	}
	s.subscriptions[sub.TenantID] = append(s.subscriptions[sub.TenantID], sub)
	return sub, nil
}

// =================================================================================
// READ REPOSITORIES
// =================================================================================

type tenantRepo struct{ s *Store }

func (r tenantRepo) GetBySlug(_ context.Context, slug string) (*repository.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.slugs[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t := r.s.tenants[id]
	return &t, nil
}

func (r tenantRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) Latest(_ context.Context, tenantID uuid.UUID) (*repository.Subscription, error) {
	r.s.mu.RLock()
	rows := append([]repository.Subscription(nil), r.s.subscriptions[tenantID]...)
	r.s.mu.RUnlock()

	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	// mismo orden que pg: created_at DESC, id DESC (uuid se compara por bytes)
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.CreatedAt.After(latest.CreatedAt) ||
			(row.CreatedAt.Equal(latest.CreatedAt) && bytes.Compare(row.ID[:], latest.ID[:]) > 0) {
			latest = row
		}
	}
	return &latest, nil
}
