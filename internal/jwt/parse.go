package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Verifier valida tokens HS256 y devuelve sus claims como map.
type Verifier struct {
	secret   Secret
	issuer   string
	audience string
	leeway   time.Duration
}

// NewVerifier crea un Verifier. issuer/audience vacíos => no se chequean.
func NewVerifier(secret Secret, issuer, audience string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer, audience: audience, leeway: 30 * time.Second}
}

// Parse valida firma, exp/nbf (con 30s de tolerancia), iss y aud.
func (v *Verifier) Parse(token string) (map[string]any, error) {
	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithLeeway(v.leeway),
		jwtv5.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwtv5.WithAudience(v.audience))
	}

	tok, err := jwtv5.Parse(token, func(*jwtv5.Token) (any, error) {
		return []byte(v.secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" {
		if iss, _ := claims["iss"].(string); iss != v.issuer {
			return nil, ErrInvalidIssuer
		}
	}

	out := make(map[string]any, len(claims))
	for k, val := range claims {
		out[k] = val
	}
	return out, nil
}
