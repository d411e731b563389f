// Package util contiene helpers chicos sin dependencias del dominio.
package util

import (
	"net/url"
	"strings"
)

// MaskDSN oculta la password de un DSN de Postgres para poder loguearlo.
// Soporta formato URL (postgres://u:p@h/db) y key=value (password=...).
func MaskDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return ""
	}
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "***"
		}
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
		return u.String()
	}

	parts := strings.Fields(dsn)
	for i, p := range parts {
		k, _, ok := strings.Cut(p, "=")
		if ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=xxxxx"
		}
	}
	return strings.Join(parts, " ")
}

