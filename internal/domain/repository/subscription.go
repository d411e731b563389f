package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus es el estado persistido de una suscripción.
// Es solo una pista: el estado efectivo se recalcula contra el reloj.
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusGrace     SubscriptionStatus = "grace"
	StatusExpired   SubscriptionStatus = "expired"
	StatusSuspended SubscriptionStatus = "suspended"
)

// ParseSubscriptionStatus normaliza un status leído del storage.
// Valores desconocidos se mapean a StatusSuspended (fail-closed).
func ParseSubscriptionStatus(s string) SubscriptionStatus {
	switch SubscriptionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTrial:
		return StatusTrial
	case StatusActive:
		return StatusActive
	case StatusGrace:
		return StatusGrace
	case StatusExpired:
		return StatusExpired
	default:
		return StatusSuspended
	}
}

// Subscription es un registro de billing de un tenant.
// Puede haber varias filas históricas; solo la más reciente (CreatedAt) es autoritativa.
type Subscription struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Status    SubscriptionStatus
	TrialEnd  *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	GraceEnd  *time.Time
	CreatedAt time.Time
}

// SubscriptionRepository define las lecturas sobre suscripciones.
type SubscriptionRepository interface {
	// Latest retorna la suscripción creada más recientemente para el tenant
	// (top-1 por created_at desc). Retorna ErrNotFound si no hay ninguna.
	Latest(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
}
