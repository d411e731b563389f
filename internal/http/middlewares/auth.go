package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/storegate/internal/claims"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/metrics"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// TokenVerifier valida un bearer token y devuelve sus claims.
type TokenVerifier interface {
	Parse(token string) (map[string]any, error)
}

// Authenticate valida Authorization: Bearer <JWT> si viene.
// Sin header el request sigue anónimo (los gates posteriores deciden);
// con un token inválido responde 401.
func Authenticate(v TokenVerifier, m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_request"`)
				m.Gate(GateAuth, metrics.OutcomeDeny, "bad_scheme")
				errors.WriteError(w, r, errors.ErrUnauthorized.WithDetail("expected a bearer token"))
				return
			}

			raw, err := v.Parse(strings.TrimSpace(ah[7:]))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				m.Gate(GateAuth, metrics.OutcomeDeny, "invalid_token")
				logger.From(r.Context()).Info("bearer rejected", logger.Gate(GateAuth), logger.Err(err))
				errors.WriteError(w, r, errors.ErrTokenInvalid.WithCause(err))
				return
			}

			p := claims.FromMap(raw)
			ctx := WithPrincipal(r.Context(), &p)
			if p.Subject != "" {
				ctx = logger.Enrich(ctx, logger.Subject(p.Subject))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth responde 401 si el request es anónimo.
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) == nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				errors.WriteError(w, r, errors.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
