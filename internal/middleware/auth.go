package middleware

import (
	"strings"

	"procasa_backend/internal/auth"
	"procasa_backend/internal/logger"
	"procasa_backend/internal/models"
	"procasa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	DemoKey     = "demo_session"
)

// AuthMiddleware validates the bearer token and stores the session identity
// on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header must use Bearer scheme"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Set(DemoKey, claims.Demo)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole restricts a route to one marketplace side.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual, ok := c.Get(UserRoleKey)
		if !ok || actual.(models.UserRole) != role {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated subject id, or "" when the route
// is unauthenticated.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		return v.(string)
	}
	return ""
}

func CurrentUserRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get(UserRoleKey); ok {
		return v.(models.UserRole)
	}
	return ""
}
