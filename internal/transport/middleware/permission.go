package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sirawit/asset-borrowing/internal/auth"
)

// writeJSONError mirrors the error body shape the handlers produce, so
// middleware refusals look the same on the wire as service errors.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}

// RequireRole checks that the session principal holds one of the given roles.
// It must run after the session middleware has populated the context.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized: please login first")
				return
			}

			allowed := false
			for _, role := range roles {
				if principal.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				slog.Warn("access denied: role not permitted",
					"user_id", principal.ID,
					"role", principal.Role,
					"required_roles", roles)
				writeJSONError(w, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
