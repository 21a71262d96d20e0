package middleware

import (
	"net/http"

	"suitestay/pkg/identity"
	"suitestay/pkg/logger"
)

// Identity lifts the gateway-supplied principal headers into the
// request context. Requests with no principal are rejected before they
// reach a handler; the gateway authenticates, this service only
// consumes the claim.
func Identity(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := identity.FromRequest(r)
			if principal.ID == "" {
				log.Warn("Request without authenticated principal",
					"request_id", requestIDFrom(r.Context()),
					"path", r.URL.Path,
					"method", r.Method,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), principal)))
		})
	}
}
