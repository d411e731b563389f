// Package pg implementa el storage sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
	"github.com/dropDatabas3/storegate/internal/util"
)

// querier es el subconjunto de pgxpool.Pool que usan los repositorios.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PoolConfig tuning opcional del pool.
type PoolConfig struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// Store agrupa los repositorios sobre un pgxpool.
type Store struct{ pool *pgxpool.Pool }

// New abre el pool. El ping inicial no es bloqueante: si la DB no responde,
// se loguea y el servicio arranca igual (readyz reportará el estado).
func New(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
		pcfg.MaxConnIdleTime = cfg.ConnMaxLifetime
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: open pool: %w", err)
	}

	log := logger.Named("store.pg")
	if err := pool.Ping(ctx); err != nil {
		log.Warn("pg pool startup ping failed", logger.String("dsn", util.MaskDSN(dsn)), logger.Err(err))
	} else {
		log.Info("pg pool ready", logger.String("dsn", util.MaskDSN(dsn)), logger.Int("max_conns", int(pcfg.MaxConns)))
	}
	return &Store{pool: pool}, nil
}

// Pool expone el pool interno (migraciones/metrics).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) Tenants() repository.TenantRepository             { return &TenantRepo{q: s.pool} }
func (s *Store) Subscriptions() repository.SubscriptionRepository { return &SubscriptionRepo{q: s.pool} }
func (s *Store) Brands() repository.BrandRepository               { return &BrandRepo{q: s.pool} }
