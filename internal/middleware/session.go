package middleware

import (
	"errors"                      // Sentinel error matching
	"net/http"                    // HTTP status codes
	"pos_system/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SessionAuthMiddleware validates the session cookie and refreshes activity.
// Expiry is checked as a distinct, prior failure so the client can tell an
// expired session apart from a missing one: both are 401, with different
// machine-readable codes.
func SessionAuthMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName) // Read the session cookie
		// No cookie means the request was never authenticated
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated", "error_code": "NOT_AUTHENTICATED"})
			return
		}
		sess, err := store.Get(c.Request.Context(), id) // Load the session record
		// Expired sessions get their own code
		if errors.Is(err, session.ErrExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session expired, please log in again", "error_code": "SESSION_EXPIRED"})
			return
		}
		// Anything else (absent record, Redis failure) is not authenticated
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated", "error_code": "NOT_AUTHENTICATED"})
			return
		}
		// Sliding expiry: every authenticated request refreshes last activity
		if err := store.Touch(c.Request.Context(), sess); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": sess.UserID, // Session owner
				"error":   err.Error(), // Redis failure
			}).Warn("Failed to refresh session activity")
		}
		c.Set("session", sess) // Store the session in context for handlers
		c.Next()               // Proceed to the next handler
	}
}
