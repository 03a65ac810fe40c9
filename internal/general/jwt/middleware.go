package jwt

import (
	"net/http"

	"charide/internal/domain/user"
)

// AuthMiddlewareFunc validates tokens, enforces RBAC, and injects claims into
// the request context. Used for HTTP routes.
func AuthMiddlewareFunc(mgr *Manager, allowedRoles ...user.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, err := FromAuthorization(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := mgr.ParseAndValidate(raw)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if err := RoleAllowed(claims, allowedRoles...); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := InjectClaims(r.Context(), claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireClaims extracts JWT claims from the request context.
func RequireClaims(r *http.Request) *Claims {
	c, _ := FromContext(r.Context())
	return c
}
