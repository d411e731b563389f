package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			MinConns        int    `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	// Cache del lookup tenant-por-slug. Nunca cachea suscripciones.
	Cache struct {
		// memory | redis | none
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Tenancy struct {
		Header string `yaml:"header"`
		// Reemplazan los defaults si vienen no vacíos.
		ExemptPrefixes []string `yaml:"exempt_prefixes"`
		OpenPrefixes   []string `yaml:"open_prefixes"`
		// allow | read_only | deny
		NoSubscriptionPolicy string `yaml:"no_subscription_policy"`
	} `yaml:"tenancy"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
		Audience  string `yaml:"audience"`
		TokenTTL  string `yaml:"token_ttl"`
		// Lee también los nombres viejos del claim de tenant (tenantId, tid, ...).
		LegacyTenantClaims *bool `yaml:"legacy_tenant_claims"`
	} `yaml:"auth"`

	Log struct {
		Env   string `yaml:"env"`
		Level string `yaml:"level"`
	} `yaml:"log"`

	Flags struct {
		Migrate bool `yaml:"migrate"`
	} `yaml:"flags"`
}

// Load lee el YAML en path, aplica defaults y overrides por env.
// path vacío o inexistente => solo defaults + env.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "15s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "postgres"
	}
	if c.Storage.Postgres.MaxConns == 0 {
		c.Storage.Postgres.MaxConns = 10
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "30s"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "storegate:"
	}
	if c.Tenancy.Header == "" {
		c.Tenancy.Header = "X-Tenant-Slug"
	}
	if c.Tenancy.NoSubscriptionPolicy == "" {
		c.Tenancy.NoSubscriptionPolicy = "allow"
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "storegate"
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "1h"
	}
	if c.Auth.LegacyTenantClaims == nil {
		v := true
		c.Auth.LegacyTenantClaims = &v
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// LegacyClaims retorna el valor efectivo de auth.legacy_tenant_claims.
func (c *Config) LegacyClaims() bool {
	return c.Auth.LegacyTenantClaims == nil || *c.Auth.LegacyTenantClaims
}

// LogEnv retorna log.env o, si no está, app.app_env.
func (c *Config) LogEnv() string {
	if c.Log.Env != "" {
		return c.Log.Env
	}
	return c.App.Env
}

// Duration parsea un campo duración ya validado; vacío => fallback.
func Duration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
		return d
	}
	return fallback
}

// Validate verifica valores críticos.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	switch strings.ToLower(c.Cache.Kind) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("config: unknown cache.kind %q", c.Cache.Kind)
	}
	switch strings.ToLower(c.Tenancy.NoSubscriptionPolicy) {
	case "allow", "read_only", "deny":
	default:
		return fmt.Errorf("config: unknown tenancy.no_subscription_policy %q", c.Tenancy.NoSubscriptionPolicy)
	}
	for name, v := range map[string]string{
		"server.read_timeout":                c.Server.ReadTimeout,
		"server.write_timeout":               c.Server.WriteTimeout,
		"server.shutdown_timeout":            c.Server.ShutdownTimeout,
		"cache.ttl":                          c.Cache.TTL,
		"auth.token_ttl":                     c.Auth.TokenTTL,
		"storage.postgres.conn_max_lifetime": c.Storage.Postgres.ConnMaxLifetime,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	if strings.EqualFold(c.Storage.Driver, "postgres") && c.Storage.DSN == "" {
		return errors.New("config: storage.dsn is required for postgres")
	}
	if strings.TrimSpace(c.Tenancy.Header) == "" {
		return errors.New("config: tenancy.header must not be blank")
	}
	if strings.EqualFold(c.App.Env, "prod") && len(c.Auth.JWTSecret) < 32 {
		return errors.New("config: auth.jwt_secret must be at least 32 bytes in prod")
	}
	return nil
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MIN_CONNS"); ok {
		c.Storage.Postgres.MinConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// TENANCY
	if v, ok := getEnvStr("TENANT_HEADER"); ok {
		c.Tenancy.Header = strings.TrimSpace(v)
	}
	if v, ok := getEnvCSV("TENANT_EXEMPT_PREFIXES"); ok {
		c.Tenancy.ExemptPrefixes = v
	}
	if v, ok := getEnvCSV("TENANT_OPEN_PREFIXES"); ok {
		c.Tenancy.OpenPrefixes = v
	}
	if v, ok := getEnvStr("NO_SUBSCRIPTION_POLICY"); ok {
		c.Tenancy.NoSubscriptionPolicy = strings.ToLower(strings.TrimSpace(v))
	}

	// AUTH
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.Auth.Issuer = v
	}
	if v, ok := getEnvStr("JWT_AUDIENCE"); ok {
		c.Auth.Audience = v
	}
	if v, ok := getEnvStr("JWT_TOKEN_TTL"); ok {
		c.Auth.TokenTTL = v
	}
	if v, ok := getEnvBool("AUTH_LEGACY_TENANT_CLAIMS"); ok {
		c.Auth.LegacyTenantClaims = &v
	}

	// LOG
	if v, ok := getEnvStr("LOG_ENV"); ok {
		c.Log.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	// FLAGS
	if v, ok := getEnvBool("FLAGS_MIGRATE"); ok {
		c.Flags.Migrate = v
	}
}
