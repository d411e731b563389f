package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer firma tokens HS256. Solo escribe el claim canónico tenant_id; los
// nombres viejos se aceptan al leer pero nunca se emiten.
type Issuer struct {
	Iss       string
	Audience  string
	Secret    Secret
	AccessTTL time.Duration
	now       func() time.Time
}

func NewIssuer(iss, audience string, secret Secret, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{Iss: iss, Audience: audience, Secret: secret, AccessTTL: ttl, now: time.Now}
}

// AccessClaims describe al principal del token.
type AccessClaims struct {
	Subject     string
	TenantID    uuid.UUID
	Role        string
	Permissions []string
	// TTL pisa AccessTTL si > 0.
	TTL time.Duration
}

// IssueAccess firma un access token. Retorna el token y su expiración.
func (i *Issuer) IssueAccess(ac AccessClaims) (string, time.Time, error) {
	if ac.Subject == "" {
		return "", time.Time{}, errors.New("jwt: subject required")
	}
	ttl := i.AccessTTL
	if ac.TTL > 0 {
		ttl = ac.TTL
	}
	now := i.now()
	exp := now.Add(ttl)

	claims := jwtv5.MapClaims{
		"sub": ac.Subject,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	}
	if i.Iss != "" {
		claims["iss"] = i.Iss
	}
	if i.Audience != "" {
		claims["aud"] = i.Audience
	}
	if ac.TenantID != uuid.Nil {
		claims[ClaimTenantID] = ac.TenantID.String()
	}
	if ac.Role != "" {
		claims[ClaimRole] = ac.Role
	}
	if len(ac.Permissions) > 0 {
		claims[ClaimPermissions] = ac.Permissions
	}

	signed, err := i.SignRaw(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// SignRaw firma un MapClaims arbitrario (tests y herramientas de migración de tokens).
func (i *Issuer) SignRaw(claims jwtv5.MapClaims) (string, error) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString([]byte(i.Secret))
}
