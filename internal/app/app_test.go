package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storegate/internal/config"
	jwtx "github.com/dropDatabas3/storegate/internal/jwt"
	"github.com/dropDatabas3/storegate/internal/store/memory"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CACHE_KIND", "memory")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SEED_TENANT_SLUG", "local")
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNew_MemoryWiring(t *testing.T) {
	cfg := memoryConfig(t)
	a, err := New(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, ok := a.Store.(*memory.Store)
	require.True(t, ok)

	tn, err := a.Store.Tenants().GetBySlug(context.Background(), "local")
	require.NoError(t, err)

	tok, _, err := a.Issuer.IssueAccess(jwtx.AccessClaims{Subject: "owner", TenantID: tn.ID, Role: "Owner"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/brands", nil)
	req.Header.Set("X-Tenant-Slug", "local")
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RejectsBadPolicy(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Tenancy.NoSubscriptionPolicy = "maybe"
	_, err := New(context.Background(), cfg, Deps{})
	assert.Error(t, err)
}

func TestNew_EphemeralSecretOutsideProd(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Auth.JWTSecret = ""
	a, err := New(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}
