// Package store abre el backend de almacenamiento configurado.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/store/memory"
	"github.com/dropDatabas3/storegate/internal/store/pg"
)

// Store agrupa los repositorios del núcleo. Brands ya viene confinado al
// tenant del request; los repos de tenants/suscripciones son de lectura.
type Store interface {
	Tenants() repository.TenantRepository
	Subscriptions() repository.SubscriptionRepository
	Brands() repository.BrandRepository
	Ping(ctx context.Context) error
	Close() error
}

// Config selecciona el driver.
type Config struct {
	Driver          string // postgres | memory
	DSN             string
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// Open crea el store para cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "pg":
		return pg.New(ctx, cfg.DSN, pg.PoolConfig{
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

var (
	_ Store = (*pg.Store)(nil)
	_ Store = (*memory.Store)(nil)
)
