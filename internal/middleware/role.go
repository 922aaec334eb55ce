package middleware

import (
	"net/http"                    // HTTP status codes
	"pos_system/internal/domain"  // Role hierarchy
	"pos_system/internal/session" // Session record type

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoleMiddleware allows the request only when the session's role meets
// the required privilege level. Runs strictly after SessionAuthMiddleware, so
// unauthenticated requests never reach the role comparison.
func RequireRoleMiddleware(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("session") // Session placed by SessionAuthMiddleware
		// Check the session exists in context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated", "error_code": "NOT_AUTHENTICATED"})
			return
		}
		sess, ok := val.(*session.Session)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated", "error_code": "NOT_AUTHENTICATED"})
			return
		}
		// The role snapshot taken at login is the authority here, not the
		// users table; a role change only takes effect on the next login.
		// Unknown roles rank 0 and fail every gate.
		if !sess.Role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient privileges", "error_code": "FORBIDDEN"})
			return
		}
		c.Next() // Privilege level is sufficient
	}
}
