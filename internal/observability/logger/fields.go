package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// Route es el patrón chi que atendió el request ("GET /brands/{id}").
func Route(v string) zap.Field { return zap.String("route", v) }

// RouteClass es la clase de ruta (tenant, open, exempt).
func RouteClass(v string) zap.Field { return zap.String("route_class", v) }

// =================================================================================
// TENANCY / GATES
// =================================================================================

func TenantID(v string) zap.Field { return zap.String("tenant_id", v) }

func TenantSlug(v string) zap.Field { return zap.String("tenant_slug", v) }

func Subject(v string) zap.Field { return zap.String("sub", v) }

// Gate identifica el gate que tomó la decisión (resolver, claim, subscription, permission).
func Gate(v string) zap.Field { return zap.String("gate", v) }

// Reason es el motivo estable de la denegación.
func Reason(v string) zap.Field { return zap.String("reason", v) }

// State es el estado efectivo de la suscripción.
func State(v string) zap.Field { return zap.String("state", v) }

// Policy es la política aplicada cuando no hay suscripción.
func Policy(v string) zap.Field { return zap.String("policy", v) }

// =================================================================================
// SISTEMA
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }

func Op(v string) zap.Field { return zap.String("op", v) }

func Err(err error) zap.Field { return zap.Error(err) }

func Count(v int) zap.Field { return zap.Int("count", v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }

func String(key, v string) zap.Field { return zap.String(key, v) }

func Int(key string, v int) zap.Field { return zap.Int(key, v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
