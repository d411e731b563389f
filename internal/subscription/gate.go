package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// Reason identifica por qué se denegó (o restringió) un request.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonTenantSuspended Reason = "tenant_suspended"
	ReasonExpired         Reason = "subscription_expired"
	ReasonSuspended       Reason = "subscription_suspended"
	ReasonReadOnly        Reason = "read_only_grace"
	ReasonNoSubscription  Reason = "no_subscription"
)

// Decision es el resultado del gate para un request concreto.
type Decision struct {
	Allowed    bool
	Reason     Reason
	Evaluation Evaluation
}

// GateConfig configura el gate.
type GateConfig struct {
	Tenants       repository.TenantRepository
	Subscriptions repository.SubscriptionRepository
	Policy        NoSubscriptionPolicy
	// Now permite inyectar el reloj (tests). Default: time.Now.
	Now func() time.Time
}

// Gate evalúa tenant + última suscripción contra el reloj.
// Solo lee; nunca escribe ni cachea el estado de la suscripción.
type Gate struct {
	tenants repository.TenantRepository
	subs    repository.SubscriptionRepository
	policy  NoSubscriptionPolicy
	now     func() time.Time
}

// NewGate crea un Gate.
func NewGate(cfg GateConfig) *Gate {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	policy := cfg.Policy
	if policy == "" {
		policy = PolicyAllow
	}
	return &Gate{
		tenants: cfg.Tenants,
		subs:    cfg.Subscriptions,
		policy:  policy,
		now:     now,
	}
}

// Policy retorna la política de "sin suscripción" vigente.
func (g *Gate) Policy() NoSubscriptionPolicy { return g.policy }

// Evaluate calcula el estado efectivo del tenant sin considerar método.
// El flag active del tenant se chequea primero: un tenant suspendido queda
// denegado sin importar la suscripción.
func (g *Gate) Evaluate(ctx context.Context, tenantID uuid.UUID) (*repository.Tenant, Evaluation, error) {
	t, err := g.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, Evaluation{}, fmt.Errorf("subscription: load tenant: %w", err)
	}
	if !t.Active {
		return t, Evaluation{Effective: StateSuspended, Access: AccessDenied}, nil
	}

	sub, err := g.subs.Latest(ctx, tenantID)
	if err != nil && !repository.IsNotFound(err) {
		return t, Evaluation{}, fmt.Errorf("subscription: load latest: %w", err)
	}
	if repository.IsNotFound(err) {
		sub = nil
	}
	return t, Evaluate(sub, g.now(), g.policy), nil
}

// Check decide si el request (método) puede continuar.
func (g *Gate) Check(ctx context.Context, tenantID uuid.UUID, method string) (Decision, error) {
	t, ev, err := g.Evaluate(ctx, tenantID)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{Evaluation: ev}

	switch {
	case !t.Active:
		d.Reason = ReasonTenantSuspended
	case ev.Permits(method):
		d.Allowed = true
		if ev.Effective == StateNone {
			d.Reason = ReasonNoSubscription
		}
	case ev.Effective == StateNone:
		d.Reason = ReasonNoSubscription
	case ev.Access == AccessReadOnly:
		d.Reason = ReasonReadOnly
	case ev.Effective == StateSuspended:
		d.Reason = ReasonSuspended
	default:
		d.Reason = ReasonExpired
	}
	return d, nil
}
