package claims

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantClaim_Order(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()

	v, ok := TenantClaim(map[string]any{"tenant_id": a, "tenantId": b}, true)
	require.True(t, ok)
	assert.Equal(t, a, v)

	v, ok = TenantClaim(map[string]any{"tid": b}, true)
	require.True(t, ok)
	assert.Equal(t, b, v)

	v, ok = TenantClaim(map[string]any{"http://schemas.storegate.io/claims/tenantid": a}, true)
	require.True(t, ok)
	assert.Equal(t, a, v)

	v, ok = TenantClaim(map[string]any{"X-TENANT-REF": b}, true)
	require.True(t, ok)
	assert.Equal(t, b, v)
}

func TestTenantClaim_FallbackPicksLowestKey(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()

	v, ok := TenantClaim(map[string]any{"z_tenant": b, "a_tenant": a, "b_tenant": 7.0}, true)
	require.True(t, ok)
	assert.Equal(t, a, v)

	// las keys no string no compiten
	v, ok = TenantClaim(map[string]any{"a_tenant": 7.0, "z_tenant": b}, true)
	require.True(t, ok)
	assert.Equal(t, b, v)
}

func TestTenantClaim_LegacyDisabled(t *testing.T) {
	_, ok := TenantClaim(map[string]any{"tenantId": uuid.NewString()}, false)
	assert.False(t, ok)

	_, ok = TenantClaim(map[string]any{"tenant_id": uuid.NewString()}, false)
	assert.True(t, ok)
}

func TestTenantClaim_IgnoresBlankAndNonString(t *testing.T) {
	_, ok := TenantClaim(map[string]any{"tenant_id": "  ", "tenant": 42.0}, true)
	assert.False(t, ok)
}

func TestTenantID(t *testing.T) {
	id := uuid.New()
	got, found, err := TenantID(map[string]any{"tenant_id": id.String()}, true)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, got)

	_, found, err = TenantID(map[string]any{"tenant_id": "acme"}, true)
	assert.True(t, found)
	require.Error(t, err)

	_, found, err = TenantID(map[string]any{"sub": "x"}, true)
	assert.False(t, found)
	require.NoError(t, err)
}

func TestPermissions_Shapes(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Permissions(map[string]any{"permissions": []any{"a", "b", 3.0}}))
	assert.Equal(t, []string{"a", "b", "c"}, Permissions(map[string]any{"permissions": "a b,c"}))
	assert.Equal(t, []string{"x"}, Permissions(map[string]any{"perms": []string{"x"}}))
	assert.Empty(t, Permissions(map[string]any{}))
}

func TestPrincipal(t *testing.T) {
	p := FromMap(map[string]any{"sub": "u1", "role": "owner", "permissions": "brands.read"})
	assert.Equal(t, "u1", p.Subject)
	assert.True(t, p.IsOwner())
	assert.True(t, p.HasAny("brands.write", "brands.read"))
	assert.False(t, p.HasAny("brands.write"))

	p = FromMap(map[string]any{"roles": []any{"Cashier"}})
	assert.Equal(t, "Cashier", p.Role)
	assert.False(t, p.IsOwner())
}
