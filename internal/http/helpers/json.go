// Package helpers contiene utilidades compartidas por los handlers HTTP.
package helpers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/dropDatabas3/storegate/internal/http/errors"
)

const maxJSONBody = 64 << 10 // 64KB

// ReadJSON decodifica el body en dst de forma estricta: exige Content-Type
// JSON, limita el tamaño y rechaza campos desconocidos o datos extra.
// Devuelve false si ya escribió el error HTTP.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.Contains(ct, "application/json") {
		errors.WriteError(w, r, errors.ErrInvalidJSON.WithDetail("Content-Type must be application/json"))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		detail := "malformed body"
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.Is(err, io.EOF):
			detail = "empty body"
		case stderrors.As(err, &maxErr):
			detail = "body too large"
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			detail = err.Error()
		}
		errors.WriteError(w, r, errors.ErrInvalidJSON.WithDetail(detail).WithCause(err))
		return false
	}
	if dec.More() {
		errors.WriteError(w, r, errors.ErrInvalidJSON.WithDetail("unexpected data after JSON body"))
		return false
	}
	return true
}

// WriteJSON escribe v como JSON con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent responde 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
