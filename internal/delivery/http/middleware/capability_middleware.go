package middleware

import (
	"net/http"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
)

// RequireCapability creates a middleware that checks the actor's derived
// capability set. The actor must already be attached by Authenticate.
func RequireCapability(allowed func(entity.Capabilities) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Actor information not found")
				return
			}

			if !allowed(actor.Capabilities()) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireCapability(func(c entity.Capabilities) bool { return c.IsAdmin })(next)
}
