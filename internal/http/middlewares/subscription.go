package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
	"github.com/dropDatabas3/storegate/internal/subscription"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// SubscriptionChecker decide si el tenant puede ejecutar el método.
type SubscriptionChecker interface {
	Check(ctx context.Context, tenantID uuid.UUID, method string) (subscription.Decision, error)
}

// SubscriptionGate aplica el estado efectivo de la suscripción en cada request.
// Se recalcula siempre: no hay cache del estado.
func SubscriptionGate(routes *tenancy.Routes, gate SubscriptionChecker, m *metrics.Metrics) Middleware {
	if routes == nil {
		routes = tenancy.DefaultRoutes()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !routes.RequiresMembership(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			tenantID, ok := tenancy.FromContext(r.Context()).TenantID()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.From(r.Context())
			d, err := gate.Check(r.Context(), tenantID, r.Method)
			if err != nil {
				if repository.IsNotFound(err) {
					m.Gate(GateSubscription, metrics.OutcomeDeny, "tenant_not_found")
					log.Warn("tenant vanished before subscription check", logger.Gate(GateSubscription))
					errors.WriteError(w, r, errors.ErrTenantNotFound.WithCause(err))
					return
				}
				m.Gate(GateSubscription, metrics.OutcomeError, "storage")
				errors.WriteError(w, r, errors.ErrServiceUnavailable.WithCause(err))
				return
			}

			if d.Reason == subscription.ReasonNoSubscription {
				log.Info("tenant without subscription, applying policy",
					logger.Gate(GateSubscription),
					logger.String("access", d.Evaluation.Access.String()),
				)
			}

			if !d.Allowed {
				m.Gate(GateSubscription, metrics.OutcomeDeny, string(d.Reason))
				log.Warn("subscription gate denied",
					logger.Gate(GateSubscription),
					logger.Reason(string(d.Reason)),
					logger.State(string(d.Evaluation.Effective)),
				)
				errors.WriteError(w, r, denial(d.Reason))
				return
			}

			outcome := metrics.OutcomeAllow
			if d.Evaluation.Access == subscription.AccessReadOnly {
				outcome = metrics.OutcomeReadOnly
			}
			m.Gate(GateSubscription, outcome, string(d.Reason))
			next.ServeHTTP(w, r)
		})
	}
}

func denial(reason subscription.Reason) *errors.AppError {
	switch reason {
	case subscription.ReasonTenantSuspended:
		return errors.ErrTenantSuspended
	case subscription.ReasonReadOnly:
		return errors.ErrReadOnlyGrace
	case subscription.ReasonSuspended:
		return errors.ErrSubscriptionSuspended
	case subscription.ReasonNoSubscription:
		return errors.ErrSubscriptionRequired
	default:
		return errors.ErrSubscriptionExpired
	}
}
