package middlewares

import "net/http"

// WithNoStore agrega Cache-Control: no-store. Las respuestas de la API son
// por tenant y no deben quedar en caches compartidos.
func WithNoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Add("Vary", "Authorization")
			next.ServeHTTP(w, r)
		})
	}
}
