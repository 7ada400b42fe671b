package middleware

import (
	"net/http"
	"strings"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

const msgUnauthorized = "Unauthorized access"

// sessionToken reads the session cookie and falls back to a Bearer header.
func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Auth rejects requests without a valid session token and puts the claims on
// the request context.
func Auth(jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, jwtConfig.CookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := utils.ParseToken(jwtConfig.Secret, token)
			if err != nil {
				logger.Warn("Invalid or expired session",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ClearSessionCookie(w, jwtConfig.CookieName)
				utils.ResponseUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the claims when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(jwtConfig utils.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := sessionToken(r, jwtConfig.CookieName); token != "" {
				if claims, err := utils.ParseToken(jwtConfig.Secret, token); err == nil {
					r = r.WithContext(utils.SetUserContext(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole loads the session user again and checks the stored role, so a
// role change takes effect before the token expires.
func RequireRole(userRepo repository.UserRepository, logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, msgUnauthorized)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Role check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !hasRole(user.Role, roles) {
				logger.Warn("Role check: access denied",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(role entity.UserRole, allowed []entity.UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func Buyer(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(userRepo, logger, entity.RoleBuyer)
}

func Seller(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(userRepo, logger, entity.RoleSeller)
}

// Admin lets owners through as well.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(userRepo, logger, entity.RoleAdmin, entity.RoleOwner)
}
