package jwt

import (
	"errors"
	"strings"
)

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrExpired       = errors.New("expired")
	ErrInvalidIssuer = errors.New("invalid_issuer")
	ErrWeakSecret    = errors.New("jwt: secret must be at least 32 bytes")
)

// Claims canónicas que emite el Issuer.
const (
	ClaimTenantID    = "tenant_id"
	ClaimRole        = "role"
	ClaimPermissions = "permissions"
)

// Secret es la clave HS256 compartida entre quien emite y quien verifica.
type Secret []byte

// NewSecret valida la longitud mínima (32 bytes).
func NewSecret(s string) (Secret, error) {
	s = strings.TrimSpace(s)
	if len(s) < 32 {
		return nil, ErrWeakSecret
	}
	return Secret(s), nil
}
