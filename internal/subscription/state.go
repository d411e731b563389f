// Package subscription deriva el estado efectivo de la suscripción de un tenant
// y decide si un request puede continuar.
//
// El status persistido es solo una pista: la expiración es función del tiempo y
// no se escribe de vuelta, así que se reconcilia contra el reloj en cada evaluación.
package subscription

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// State es el estado efectivo (puede diferir del persistido).
type State string

const (
	StateNone      State = "none"
	StateTrial     State = "trial"
	StateActive    State = "active"
	StateGrace     State = "grace"
	StateExpired   State = "expired"
	StateSuspended State = "suspended"
)

// Access es el nivel de acceso que otorga un estado efectivo.
type Access int

const (
	AccessFull Access = iota
	AccessReadOnly
	AccessDenied
)

func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "read_only"
	case AccessDenied:
		return "denied"
	default:
		return "full"
	}
}

// NoSubscriptionPolicy define qué hacer con un tenant sin ninguna fila de suscripción.
type NoSubscriptionPolicy string

const (
	// PolicyAllow: sin restricción hasta que exista una suscripción.
	PolicyAllow NoSubscriptionPolicy = "allow"
	// PolicyReadOnly: solo lecturas.
	PolicyReadOnly NoSubscriptionPolicy = "read_only"
	// PolicyDeny: se trata como expirada.
	PolicyDeny NoSubscriptionPolicy = "deny"
)

// ParsePolicy interpreta la política configurada. "" => PolicyAllow.
func ParsePolicy(s string) (NoSubscriptionPolicy, error) {
	switch NoSubscriptionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAllow:
		return PolicyAllow, nil
	case PolicyReadOnly, "readonly":
		return PolicyReadOnly, nil
	case PolicyDeny:
		return PolicyDeny, nil
	default:
		return "", fmt.Errorf("subscription: unknown no-subscription policy %q", s)
	}
}

// Evaluation es el resultado de reconciliar una suscripción contra el reloj.
type Evaluation struct {
	Persisted repository.SubscriptionStatus
	Effective State
	Access    Access
}

// Evaluate calcula el estado efectivo de sub en el instante now.
// sub == nil aplica la política de "sin suscripción".
//
// "En el pasado" es estrictamente anterior a now; una fecha igual a now sigue vigente.
func Evaluate(sub *repository.Subscription, now time.Time, policy NoSubscriptionPolicy) Evaluation {
	if sub == nil {
		ev := Evaluation{Effective: StateNone}
		switch policy {
		case PolicyDeny:
			ev.Access = AccessDenied
		case PolicyReadOnly:
			ev.Access = AccessReadOnly
		default:
			ev.Access = AccessFull
		}
		return ev
	}

	ev := Evaluation{Persisted: sub.Status}
	switch sub.Status {
	case repository.StatusTrial:
		if before(sub.TrialEnd, now) {
			ev.Effective, ev.Access = StateExpired, AccessDenied
		} else {
			ev.Effective, ev.Access = StateTrial, AccessFull
		}

	case repository.StatusActive:
		if !before(sub.EndDate, now) {
			ev.Effective, ev.Access = StateActive, AccessFull
		} else {
			ev = graceOrExpired(ev, sub.GraceEnd, now)
		}

	case repository.StatusGrace:
		ev = graceOrExpired(ev, sub.GraceEnd, now)

	case repository.StatusExpired:
		ev.Effective, ev.Access = StateExpired, AccessDenied

	default:
		// Suspended y cualquier valor desconocido
		ev.Effective, ev.Access = StateSuspended, AccessDenied
	}
	return ev
}

func graceOrExpired(ev Evaluation, graceEnd *time.Time, now time.Time) Evaluation {
	if graceEnd != nil && graceEnd.After(now) {
		ev.Effective, ev.Access = StateGrace, AccessReadOnly
		return ev
	}
	ev.Effective, ev.Access = StateExpired, AccessDenied
	return ev
}

// before indica si t está presente y es estrictamente anterior a now.
func before(t *time.Time, now time.Time) bool {
	return t != nil && t.Before(now)
}

// Permits indica si el nivel de acceso admite el método HTTP.
func (e Evaluation) Permits(method string) bool {
	switch e.Access {
	case AccessFull:
		return true
	case AccessReadOnly:
		return IsReadOnlyMethod(method)
	default:
		return false
	}
}

// IsReadOnlyMethod indica si el método no muta estado.
func IsReadOnlyMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
