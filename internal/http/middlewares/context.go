package middlewares

import (
	"context"

	"github.com/dropDatabas3/storegate/internal/claims"
)

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithPrincipal inyecta el principal autenticado.
func WithPrincipal(ctx context.Context, p *claims.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// GetPrincipal retorna el principal o nil si el request es anónimo.
func GetPrincipal(ctx context.Context) *claims.Principal {
	p, _ := ctx.Value(ctxPrincipalKey).(*claims.Principal)
	return p
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID retorna el request ID o "".
func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestIDKey).(string)
	return s
}
