package middleware

import (
	"net/http"

	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/pkg/response"
)

// RequireRole gates a subtree to the given roles. The user must already have
// been resolved by AuthMiddleware.
func RequireRole(allowed ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User information not found")
				return
			}

			for _, role := range allowed {
				if user.UserType == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.UserTypeAdmin)(next)
}

func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.UserTypeDoctor)(next)
}

func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.UserTypePatient)(next)
}
