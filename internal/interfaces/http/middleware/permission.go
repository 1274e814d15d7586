package middleware

import (
	"net/http"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the caller's role granting the given
// permission. The role comes from the validated JWT; permissions derive from
// the role alone so there is nothing to look up.
func RequirePermission(permission identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if !role.IsValid() {
			abortForbidden(c, "No role in token")
			return
		}
		if !identity.HasPermission(role, permission) {
			abortForbidden(c, "Missing permission: "+string(permission))
			return
		}
		c.Next()
	}
}

// RequireAnyPermission gates a route on the caller holding at least one of
// the given permissions
func RequireAnyPermission(permissions ...identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if !role.IsValid() {
			abortForbidden(c, "No role in token")
			return
		}
		if !identity.HasAnyPermission(role, permissions) {
			abortForbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on an exact role
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity.Role(GetJWTRole(c)) != role {
			abortForbidden(c, "Requires role: "+role.String())
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": message,
		},
	})
}
