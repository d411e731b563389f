package tenancy

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_ResolveOnce(t *testing.T) {
	tc := New()
	require.False(t, tc.Resolved())

	first := uuid.New()
	require.NoError(t, tc.Resolve(first, "acme"))

	err := tc.Resolve(uuid.New(), "other")
	require.ErrorIs(t, err, ErrAlreadyResolved)

	id, ok := tc.TenantID()
	assert.True(t, ok)
	assert.Equal(t, first, id)
	assert.Equal(t, "acme", tc.Slug())
}

func TestContext_ResolveRejectsNil(t *testing.T) {
	tc := New()
	require.ErrorIs(t, tc.Resolve(uuid.Nil, "acme"), ErrInvalidTenant)
	assert.False(t, tc.Resolved())
}

func TestContext_NilSafe(t *testing.T) {
	var tc *Context
	assert.False(t, tc.Resolved())
	assert.Equal(t, "", tc.Slug())
	_, ok := tc.TenantID()
	assert.False(t, ok)
}

func TestContext_ConcurrentResolveSingleWinner(t *testing.T) {
	tc := New()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tc.Resolve(uuid.New(), "s") == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestScopeFrom(t *testing.T) {
	_, err := ScopeFrom(context.Background())
	require.ErrorIs(t, err, ErrNoTenantContext)

	tc := New()
	ctx := WithContext(context.Background(), tc)
	assert.Same(t, tc, FromContext(ctx))

	s, err := ScopeFrom(ctx)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.False(t, s.Restricted())
}
