package middleware

import (
	"net/http"
	"strings"

	"openstage/internal/domain"
	jwtsvc "openstage/internal/pkg/jwt"
	"openstage/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the Bearer token and stores the acting
// principal's id and role on the request context.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwt.Parse(tokenStr)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// PrincipalFromContext rebuilds the acting principal set by RequireAuth.
func PrincipalFromContext(c *gin.Context) domain.Principal {
	return domain.Principal{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}
