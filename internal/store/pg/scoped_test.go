package pg

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/tenancy"
	migrations "github.com/dropDatabas3/storegate/migrations/postgres"
)

func resolved(t *testing.T, id uuid.UUID) tenancy.Scope {
	t.Helper()
	tc := tenancy.New()
	require.NoError(t, tc.Resolve(id, "acme"))
	return tc.Scope()
}

func TestScopedQuery_ResolvedAddsTenantPredicate(t *testing.T) {
	tenant := uuid.New()
	q, err := newScopedQuery(resolved(t, tenant), "brands")
	require.NoError(t, err)
	id := uuid.New()
	sql, args := q.eq("id", id).selectSQL("id", "created_at")

	assert.Equal(t, "SELECT id FROM brands WHERE tenant_id = $1 AND id = $2 ORDER BY created_at", sql)
	assert.Equal(t, []any{tenant, id}, args)
}

func TestScopedQuery_UnresolvedIsNoop(t *testing.T) {
	q, err := newScopedQuery(tenancy.New().Scope(), "brands")
	require.NoError(t, err)
	sql, args := q.selectSQL("id", "")
	assert.Equal(t, "SELECT id FROM brands", sql)
	assert.Empty(t, args)
}

func TestScopedQuery_ZeroScopeRejected(t *testing.T) {
	_, err := newScopedQuery(tenancy.Scope{}, "brands")
	require.ErrorIs(t, err, repository.ErrNoScope)
}

func TestScopedQuery_UpdateAndDeleteNumbering(t *testing.T) {
	tenant := uuid.New()
	id := uuid.New()

	q, err := newScopedQuery(resolved(t, tenant), "brands")
	require.NoError(t, err)
	sql, args := q.eq("id", id).updateSQL([]string{"name"}, []any{"Nike"})
	assert.Equal(t, "UPDATE brands SET name = $3 WHERE tenant_id = $1 AND id = $2", sql)
	assert.Equal(t, []any{tenant, id, "Nike"}, args)

	q, err = newScopedQuery(resolved(t, tenant), "brands")
	require.NoError(t, err)
	sql, args = q.eq("id", id).deleteSQL()
	assert.Equal(t, "DELETE FROM brands WHERE tenant_id = $1 AND id = $2", sql)
	assert.Len(t, args, 2)
}

func TestScopeFrom_NoTenantContext(t *testing.T) {
	_, err := scopeFrom(context.Background())
	require.ErrorIs(t, err, repository.ErrNoScope)
}

func TestUpScripts_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b_up.sql":   {Data: []byte("select 2")},
		"m/0001_a_up.sql":   {Data: []byte("select 1")},
		"m/0001_a_down.sql": {Data: []byte("drop")},
		"m/README.md":       {Data: []byte("x")},
	}
	files, err := upScripts(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"m/0001_a_up.sql", "m/0002_b_up.sql"}, files)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := upScripts(migrations.CoreFS, migrations.CoreDir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "core/0001_tenancy_up.sql", files[0])
}
