package subscription

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/store/memory"
)

func newGate(t *testing.T, policy NoSubscriptionPolicy) (*Gate, *memory.Store) {
	t.Helper()
	s := memory.New()
	return NewGate(GateConfig{
		Tenants:       s.Tenants(),
		Subscriptions: s.Subscriptions(),
		Policy:        policy,
		Now:           func() time.Time { return now },
	}), s
}

func putTenant(t *testing.T, s *memory.Store, slug string, active bool) uuid.UUID {
	t.Helper()
	tn, err := s.PutTenant(repository.Tenant{Slug: slug, Name: slug, Active: active})
	require.NoError(t, err)
	return tn.ID
}

func TestGate_SuspendedTenantCheckedFirst(t *testing.T) {
	g, s := newGate(t, PolicyAllow)
	id := putTenant(t, s, "acme", false)
	_, err := s.AddSubscription(repository.Subscription{TenantID: id, Status: repository.StatusActive, EndDate: at(30 * day)})
	require.NoError(t, err)

	d, err := g.Check(context.Background(), id, http.MethodGet)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonTenantSuspended, d.Reason)
}

func TestGate_GraceIsReadOnly(t *testing.T) {
	g, s := newGate(t, PolicyAllow)
	id := putTenant(t, s, "acme", true)
	_, err := s.AddSubscription(repository.Subscription{
		TenantID: id, Status: repository.StatusActive,
		EndDate: at(-day), GraceEnd: at(2 * day),
	})
	require.NoError(t, err)

	d, err := g.Check(context.Background(), id, http.MethodGet)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, StateGrace, d.Evaluation.Effective)

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		d, err = g.Check(context.Background(), id, m)
		require.NoError(t, err)
		assert.False(t, d.Allowed, m)
		assert.Equal(t, ReasonReadOnly, d.Reason, m)
	}
}

func TestGate_UsesLatestSubscription(t *testing.T) {
	g, s := newGate(t, PolicyAllow)
	id := putTenant(t, s, "acme", true)
	_, err := s.AddSubscription(repository.Subscription{TenantID: id, Status: repository.StatusActive, CreatedAt: now.Add(-10 * day)})
	require.NoError(t, err)
	_, err = s.AddSubscription(repository.Subscription{TenantID: id, Status: repository.StatusTrial, TrialEnd: at(-day), CreatedAt: now.Add(-day)})
	require.NoError(t, err)

	d, err := g.Check(context.Background(), id, http.MethodGet)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonExpired, d.Reason)
}

func TestGate_PersistedSuspended(t *testing.T) {
	g, s := newGate(t, PolicyAllow)
	id := putTenant(t, s, "acme", true)
	_, err := s.AddSubscription(repository.Subscription{TenantID: id, Status: repository.StatusSuspended, EndDate: at(30 * day)})
	require.NoError(t, err)

	d, err := g.Check(context.Background(), id, http.MethodGet)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSuspended, d.Reason)
}

func TestGate_NoSubscriptionPolicies(t *testing.T) {
	cases := []struct {
		policy  NoSubscriptionPolicy
		method  string
		allowed bool
	}{
		{PolicyAllow, http.MethodPost, true},
		{PolicyReadOnly, http.MethodGet, true},
		{PolicyReadOnly, http.MethodPost, false},
		{PolicyDeny, http.MethodGet, false},
	}
	for _, tc := range cases {
		g, s := newGate(t, tc.policy)
		id := putTenant(t, s, "acme", true)
		d, err := g.Check(context.Background(), id, tc.method)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, d.Allowed, "%s %s", tc.policy, tc.method)
		assert.Equal(t, ReasonNoSubscription, d.Reason)
		assert.Equal(t, StateNone, d.Evaluation.Effective)
	}
}

func TestGate_UnknownTenant(t *testing.T) {
	g, _ := newGate(t, PolicyAllow)
	_, err := g.Check(context.Background(), uuid.New(), http.MethodGet)
	require.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}

func TestNewGate_DefaultPolicy(t *testing.T) {
	g := NewGate(GateConfig{})
	assert.Equal(t, PolicyAllow, g.Policy())
}
