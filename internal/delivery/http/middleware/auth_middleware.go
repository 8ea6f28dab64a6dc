package middleware

import (
	"context"
	"net/http"
	"strings"

	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"
	"doctor-appointment-platform/pkg/jwt"
	"doctor-appointment-platform/pkg/response"

	"gorm.io/gorm"
)

type contextKey string

const userKey contextKey = "current_user"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	db         *gorm.DB
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, db *gorm.DB, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		db:         db,
		userRepo:   userRepo,
	}
}

// Authenticate validates the bearer token and resolves its subject against
// the user directory. A syntactically valid token whose subject matches no
// user is rejected, not crashed on.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to resolve token subject")
			return
		}
		if user == nil {
			response.Unauthorized(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user placed by Authenticate.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	return user, ok
}

// WithUser returns a context carrying the user, for handler and middleware tests.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
