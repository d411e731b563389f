// Package app cablea storage, cache, gates y router a partir de la config.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/bootstrap"
	"github.com/dropDatabas3/storegate/internal/cache"
	"github.com/dropDatabas3/storegate/internal/config"
	"github.com/dropDatabas3/storegate/internal/directory"
	"github.com/dropDatabas3/storegate/internal/http/handlers"
	mw "github.com/dropDatabas3/storegate/internal/http/middlewares"
	"github.com/dropDatabas3/storegate/internal/http/router"
	jwtx "github.com/dropDatabas3/storegate/internal/jwt"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
	"github.com/dropDatabas3/storegate/internal/store"
	"github.com/dropDatabas3/storegate/internal/store/memory"
	"github.com/dropDatabas3/storegate/internal/store/pg"
	"github.com/dropDatabas3/storegate/internal/subscription"
	"github.com/dropDatabas3/storegate/internal/tenancy"
	"github.com/dropDatabas3/storegate/migrations/postgres"
)

// Deps permite inyectar piezas ya construidas (tests). Campos nil se
// construyen desde la config.
type Deps struct {
	Store store.Store
	Cache cache.Client
	Now   func() time.Time
}

// App es la aplicación cableada.
type App struct {
	Config    *config.Config
	Handler   http.Handler
	Store     store.Store
	Cache     cache.Client
	Directory *directory.Directory
	Gate      *subscription.Gate
	Issuer    *jwtx.Issuer
	Metrics   *metrics.Metrics

	closers []func() error
}

// New construye la App. Si algo falla, libera lo ya abierto.
func New(ctx context.Context, cfg *config.Config, deps Deps) (_ *App, err error) {
	log := logger.Named("app")
	a := &App{Config: cfg, Metrics: metrics.New()}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	policy, err := subscription.ParsePolicy(cfg.Tenancy.NoSubscriptionPolicy)
	if err != nil {
		return nil, err
	}

	rawSecret := cfg.Auth.JWTSecret
	if rawSecret == "" && !strings.EqualFold(cfg.App.Env, "prod") {
		// Los tokens firmados con este secreto no sobreviven un reinicio.
		rawSecret = uuid.NewString() + uuid.NewString()
		log.Warn("auth.jwt_secret not set, using an ephemeral secret")
	}
	secret, err := jwtx.NewSecret(rawSecret)
	if err != nil {
		return nil, fmt.Errorf("app: auth.jwt_secret: %w", err)
	}

	// ─── Storage ───
	a.Store = deps.Store
	if a.Store == nil {
		a.Store, err = store.Open(ctx, store.Config{
			Driver:          cfg.Storage.Driver,
			DSN:             cfg.Storage.DSN,
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			ConnMaxLifetime: config.Duration(cfg.Storage.Postgres.ConnMaxLifetime, 0),
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, a.Store.Close)
	}
	if err := a.prepareStore(ctx); err != nil {
		return nil, err
	}

	// ─── Cache (solo routing tenant-por-slug) ───
	ttl := config.Duration(cfg.Cache.TTL, 30*time.Second)
	a.Cache = deps.Cache
	if a.Cache == nil {
		a.Cache, err = cache.New(ctx, cache.Config{
			Kind:       cfg.Cache.Kind,
			Addr:       cfg.Cache.Redis.Addr,
			Password:   cfg.Cache.Redis.Password,
			DB:         cfg.Cache.Redis.DB,
			Prefix:     cfg.Cache.Redis.Prefix,
			DefaultTTL: ttl,
		})
		if err != nil {
			return nil, err
		}
		if a.Cache != nil {
			a.closers = append(a.closers, a.Cache.Close)
		}
	}

	a.Directory = directory.New(a.Store.Tenants(), a.Cache, ttl)
	a.Gate = subscription.NewGate(subscription.GateConfig{
		Tenants:       a.Store.Tenants(),
		Subscriptions: a.Store.Subscriptions(),
		Policy:        policy,
		Now:           deps.Now,
	})
	a.Issuer = jwtx.NewIssuer(cfg.Auth.Issuer, cfg.Auth.Audience, secret, config.Duration(cfg.Auth.TokenTTL, time.Hour))

	routes := tenancy.DefaultRoutes()
	if len(cfg.Tenancy.ExemptPrefixes) > 0 || len(cfg.Tenancy.OpenPrefixes) > 0 {
		exempt, open := cfg.Tenancy.ExemptPrefixes, cfg.Tenancy.OpenPrefixes
		if len(exempt) == 0 {
			exempt = routes.ExemptPrefixes()
		}
		if len(open) == 0 {
			open = routes.OpenPrefixes()
		}
		routes = tenancy.NewRoutes(exempt, open)
	}

	var cachePinger handlers.Pinger
	if a.Cache != nil {
		cachePinger = a.Cache
	}

	a.Handler = router.New(router.Deps{
		Routes:       routes,
		TenantHeader: cfg.Tenancy.Header,
		Lookup:       a.Directory,
		Verifier:     jwtx.NewVerifier(secret, cfg.Auth.Issuer, cfg.Auth.Audience),
		Subscription: a.Gate,
		LegacyClaims: cfg.LegacyClaims(),
		Permissions:  mw.NewPermissionGate(router.DefaultPermissions(), a.Metrics),
		Metrics:      a.Metrics,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
		Brands:       handlers.NewBrandsHandler(a.Store.Brands()),
		Storefront:   handlers.NewStorefrontHandler(a.Store.Tenants()),
		Platform:     handlers.NewPlatformHandler(a.Store.Tenants(), a.Gate),
		Health: &handlers.HealthHandler{
			Store:   a.Store,
			Cache:   cachePinger,
			Version: os.Getenv("SERVICE_VERSION"),
		},
	})

	log.Info("app wired",
		logger.String("storage", cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Kind),
		logger.Policy(string(policy)),
		logger.Bool("legacy_tenant_claims", cfg.LegacyClaims()),
	)
	return a, nil
}

// prepareStore corre lo específico de cada driver: migraciones y métricas
// del pool en Postgres, tienda demo en memoria.
func (a *App) prepareStore(ctx context.Context) error {
	switch s := a.Store.(type) {
	case *pg.Store:
		if err := a.Metrics.RegisterPool(s.Pool); err != nil {
			return fmt.Errorf("app: register pool metrics: %w", err)
		}
		if a.Config.Flags.Migrate {
			if _, err := s.Migrate(ctx, migrations.CoreFS, migrations.CoreDir); err != nil {
				return err
			}
		}
	case *memory.Store:
		slug := os.Getenv("SEED_TENANT_SLUG")
		t, err := bootstrap.SeedDemoTenant(s, bootstrap.SeedConfig{Slug: slug})
		if err != nil {
			return fmt.Errorf("app: seed demo tenant: %w", err)
		}
		logger.Named("app").Info("demo tenant seeded", logger.TenantSlug(t.Slug), logger.TenantID(t.ID.String()))
	}
	return nil
}

// Close libera recursos en orden inverso de apertura.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
