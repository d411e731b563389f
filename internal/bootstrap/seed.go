// Package bootstrap siembra datos de desarrollo en el store en memoria.
package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/store/memory"
)

// DefaultTrialDays es la duración del trial de la tienda demo.
const DefaultTrialDays = 14

// SeedConfig configura la tienda demo.
type SeedConfig struct {
	Slug      string // default "local"
	Name      string
	TrialDays int
	Now       time.Time
}

// SeedDemoTenant crea (o reemplaza) una tienda con trial vigente.
// Solo para storage.driver=memory: en Postgres los tenants los escribe onboarding.
func SeedDemoTenant(s *memory.Store, cfg SeedConfig) (repository.Tenant, error) {
	slug := strings.TrimSpace(cfg.Slug)
	if slug == "" {
		slug = "local"
	}
	name := cfg.Name
	if name == "" {
		name = strings.ToUpper(slug[:1]) + slug[1:]
	}
	days := cfg.TrialDays
	if days <= 0 {
		days = DefaultTrialDays
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if existing, err := s.Tenants().GetBySlug(context.Background(), slug); err == nil {
		return *existing, nil
	}

	t, err := s.PutTenant(repository.Tenant{Slug: slug, Name: name, Active: true})
	if err != nil {
		return repository.Tenant{}, err
	}
	trialEnd := now.AddDate(0, 0, days)
	_, err = s.AddSubscription(repository.Subscription{
		TenantID:  t.ID,
		Status:    repository.StatusTrial,
		StartDate: &now,
		TrialEnd:  &trialEnd,
		CreatedAt: now,
	})
	if err != nil {
		return repository.Tenant{}, err
	}
	return t, nil
}
