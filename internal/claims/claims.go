// Package claims lee los datos del principal desde las claims de un token
// ya verificado: tenant, rol y permisos.
package claims

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Canonical es el único nombre que emite el Issuer.
const Canonical = "tenant_id"

// LegacyTenantClaims son nombres que todavía traen tokens de versiones
// anteriores, en orden de preferencia.
var LegacyTenantClaims = []string{
	"tenantId",
	"TenantId",
	"tenant",
	"tid",
	"http://schemas.storegate.io/claims/tenantid",
}

// Principal es la vista de solo lectura del llamador autenticado.
type Principal struct {
	Subject     string
	Role        string
	Permissions []string
	Raw         map[string]any
}

// TenantClaim busca el claim de tenant. Con legacy=false solo mira tenant_id.
// Retorna el valor crudo (string) y si se encontró.
func TenantClaim(raw map[string]any, legacy bool) (string, bool) {
	if v, ok := stringClaim(raw, Canonical); ok {
		return v, true
	}
	if !legacy {
		return "", false
	}
	for _, name := range LegacyTenantClaims {
		if v, ok := stringClaim(raw, name); ok {
			return v, true
		}
	}
	// último recurso: cualquier key que contenga "tenant" (orden estable por nombre)
	var best string
	var found bool
	for k := range raw {
		if !strings.Contains(strings.ToLower(k), "tenant") {
			continue
		}
		if _, ok := stringClaim(raw, k); ok && (!found || k < best) {
			best, found = k, true
		}
	}
	if found {
		v, _ := stringClaim(raw, best)
		return v, true
	}
	return "", false
}

// TenantID parsea el claim de tenant como UUID.
// found=false => el token no trae tenant; err != nil => trae uno no parseable.
func TenantID(raw map[string]any, legacy bool) (id uuid.UUID, found bool, err error) {
	v, ok := TenantClaim(raw, legacy)
	if !ok {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(v)
	if err != nil {
		return uuid.Nil, true, fmt.Errorf("claims: tenant claim %q: %w", v, err)
	}
	return id, true, nil
}

// FromMap arma el Principal desde claims verificadas.
func FromMap(raw map[string]any) Principal {
	p := Principal{Raw: raw}
	p.Subject, _ = stringClaim(raw, "sub")
	p.Role = Role(raw)
	p.Permissions = Permissions(raw)
	return p
}

// Role lee "role" (o el primero de "roles").
func Role(raw map[string]any) string {
	if v, ok := stringClaim(raw, "role"); ok {
		return v
	}
	if roles := stringList(raw["roles"]); len(roles) > 0 {
		return roles[0]
	}
	return ""
}

// Permissions aplana "permissions" (o "perms"): array de strings o un string
// separado por espacios / comas.
func Permissions(raw map[string]any) []string {
	for _, k := range []string{"permissions", "perms"} {
		if v, ok := raw[k]; ok {
			return stringList(v)
		}
	}
	return nil
}

// IsOwner indica si el rol bypassea el PermissionGate.
func (p Principal) IsOwner() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), "Owner")
}

// HasAny indica si el principal tiene al menos uno de los permisos pedidos.
func (p Principal) HasAny(required ...string) bool {
	for _, have := range p.Permissions {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

func stringClaim(raw map[string]any, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		out = append(out, t...)
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		out = strings.FieldsFunc(t, func(r rune) bool { return r == ' ' || r == ',' })
	}
	clean := out[:0]
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	return clean
}
