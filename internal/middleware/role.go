package middleware

import (
	"net/http"
	"slices"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the token's role is one of
// allowed. It must run after JWTAuth.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString("role"))
		if role == "" {
			response.CustomError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Role not found in token")
			return
		}

		if !slices.Contains(allowed, role) {
			response.CustomError(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
