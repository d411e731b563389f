package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "X-Tenant-Slug", c.Tenancy.Header)
	assert.Equal(t, "allow", c.Tenancy.NoSubscriptionPolicy)
	assert.Equal(t, "memory", c.Cache.Kind)
	assert.True(t, c.LegacyClaims())
	assert.Equal(t, 30*time.Second, Duration(c.Cache.TTL, 0))
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: memory
tenancy:
  header: X-Store
  no_subscription_policy: deny
auth:
  legacy_tenant_claims: false
`)
	t.Setenv("NO_SUBSCRIPTION_POLICY", "read_only")
	t.Setenv("TENANT_EXEMPT_PREFIXES", "/platform, /health ,")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "X-Store", c.Tenancy.Header)
	assert.Equal(t, "read_only", c.Tenancy.NoSubscriptionPolicy)
	assert.Equal(t, []string{"/platform", "/health"}, c.Tenancy.ExemptPrefixes)
	assert.False(t, c.LegacyClaims())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"policy":   "storage: {driver: memory}\ntenancy: {no_subscription_policy: maybe}\n",
		"driver":   "storage: {driver: mongo}\n",
		"dsn":      "storage: {driver: postgres}\n",
		"duration": "storage: {driver: memory}\ncache: {ttl: soon}\n",
		"yaml":     "storage: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeYAML(t, body))
			require.Error(t, err)
		})
	}
}

func TestValidate_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORAGE_DRIVER", "memory")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	_, err = Load("")
	require.NoError(t, err)
}
