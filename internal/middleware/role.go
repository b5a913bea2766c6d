package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediakit/internal/domain"
	"mediakit/internal/pkg/response"
)

// RequireRole ensures that the authenticated principal has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AgencyOnly middleware requires the agency role
func AgencyOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAgency)
}
