// Package handlers contiene los handlers HTTP de la API.
//
// Los handlers asumen que la cadena de gates ya corrió: el TenantContext está
// en el contexto del request y el repositorio confina cada acceso al tenant.
package handlers
