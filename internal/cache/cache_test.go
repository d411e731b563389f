package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisWithClient(client, "sg:", time.Minute), mr
}

func exercise(t *testing.T, c Client) {
	t.Helper()
	ctx := context.Background()

	_, err := c.Get(ctx, "tenant:acme")
	require.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "tenant:acme", []byte(`{"slug":"acme"}`), 0))
	got, err := c.Get(ctx, "tenant:acme")
	require.NoError(t, err)
	assert.JSONEq(t, `{"slug":"acme"}`, string(got))

	require.NoError(t, c.Delete(ctx, "tenant:acme"))
	_, err = c.Get(ctx, "tenant:acme")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, c.Ping(ctx))
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory("sg:", time.Minute))
}

func TestMemory_Expires(t *testing.T) {
	m := NewMemory("", time.Minute)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedis(t *testing.T) {
	c, _ := newTestRedis(t)
	exercise(t, c)
}

func TestRedis_PrefixAndTTL(t *testing.T) {
	c, mr := newTestRedis(t)
	require.NoError(t, c.Set(context.Background(), "tenant:acme", []byte("x"), 0))

	assert.True(t, mr.Exists("sg:tenant:acme"))
	assert.Equal(t, time.Minute, mr.TTL("sg:tenant:acme"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Get(context.Background(), "tenant:acme")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNew_Kinds(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, Config{Kind: "none"})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(ctx, Config{Kind: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	mr := miniredis.RunT(t)
	c, err = New(ctx, Config{Kind: "redis", Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = New(ctx, Config{Kind: "memcached"})
	require.Error(t, err)
}
