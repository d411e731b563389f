package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" WARNING "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nope"))
}

func TestFromFallsBackToSingleton(t *testing.T) {
	assert.Same(t, L(), From(context.Background()))
	//nolint:staticcheck
	assert.Same(t, L(), From(nil))
}

func TestEnrichAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ToContext(context.Background(), zap.New(core))

	ctx = Enrich(ctx, TenantSlug("acme"))
	From(ctx).Info("resolved", Gate("resolver"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "acme", fields["tenant_slug"])
		assert.Equal(t, "resolver", fields["gate"])
	}
}

func TestConfigIsProd(t *testing.T) {
	assert.True(t, Config{Env: "PROD"}.IsProd())
	assert.False(t, Config{Env: "dev"}.IsProd())
}
