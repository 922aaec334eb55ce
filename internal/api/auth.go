package api

import (
	"net/http"                    // HTTP status codes
	"pos_system/internal/domain"  // Domain models
	"pos_system/internal/session" // Session store
	"strings"                     // String manipulation
	"time"                        // Cookie lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// invalidCredentialsMsg is deliberately identical for unknown usernames and
// wrong passwords so login responses cannot be used to enumerate usernames
const invalidCredentialsMsg = "Invalid username or password"

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// setSessionCookie attaches the session identifier to the response
func setSessionCookie(c *gin.Context, id string, timeout time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)                                                  // Cookie travels on top-level navigation only
	c.SetCookie(session.CookieName, id, int(timeout/time.Second), "/", "", secure, true) // HttpOnly session cookie
}

// clearSessionCookie removes the session cookie from the browser
func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true) // MaxAge -1 deletes the cookie
}

// currentSession pulls the session placed in context by the auth middleware
func currentSession(c *gin.Context) (*session.Session, bool) {
	val, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}

// sessionView is the read-only projection shown to the client. It never
// includes credentials.
func sessionView(sess *session.Session, timeout time.Duration) gin.H {
	return gin.H{
		"user_id":       sess.UserID,                            // Session owner
		"username":      sess.Username,                          // Username at login
		"role":          sess.Role,                              // Role snapshot
		"login_time":    sess.LoginTime,                         // When the session began
		"last_activity": sess.LastActivity,                      // Last authenticated request
		"expires_in":    int(sess.Remaining(timeout).Seconds()), // Seconds until expiry
	}
}

// userView is the public shape of a user record
func userView(u *domain.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "role": u.Role}
}

// LoginHandler verifies credentials and opens a new session, replacing any
// session the user already holds
func LoginHandler(db *gorm.DB, store *session.Store, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			failValidation(c, "Username and password are required")
			return
		}
		username := strings.TrimSpace(req.Username) // Trim surrounding whitespace
		if username == "" || req.Password == "" {
			failValidation(c, "Username and password are required")
			return
		}
		var user domain.User // Fetch user from database
		// Soft-deleted users are not eligible to log in. The failure response
		// matches the wrong-password one byte for byte.
		if err := db.Where("username = ? AND is_deleted = ?", username, false).First(&user).Error; err != nil {
			fail(c, http.StatusUnauthorized, codeInvalidCredentials, invalidCredentialsMsg)
			return
		}
		// Compare submitted password with the stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			fail(c, http.StatusUnauthorized, codeInvalidCredentials, invalidCredentialsMsg)
			return
		}
		// Open the session; any prior session for this user is destroyed
		sess, err := store.Create(c.Request.Context(), &user)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Store failure
			}).Error("Failed to create session")
			failInternal(c, "Login failed")
			return
		}
		setSessionCookie(c, sess.ID, store.Timeout(), secureCookie) // Hand the identifier to the browser
		// Log the successful login
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
			"role":     user.Role,     // Role snapshot
		}).Info("User logged in")
		// Return the user and the session projection
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userView(&user),
			"session": sessionView(sess, store.Timeout()),
		})
	}
}

// LogoutHandler destroys the session immediately and unconditionally.
// Logging out without an active session is not an error.
func LogoutHandler(store *session.Store, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
			// Destroy the server-side record; idempotent
			if err := store.Delete(c.Request.Context(), id); err != nil {
				logrus.WithField("error", err.Error()).Warn("Failed to delete session")
			}
		}
		clearSessionCookie(c, secureCookie)           // Drop the browser cookie either way
		c.JSON(http.StatusOK, gin.H{"success": true}) // Always a success
	}
}

// CheckHandler reports whether the caller holds a valid session. Mounted
// behind SessionAuthMiddleware, which already distinguishes SESSION_EXPIRED
// from NOT_AUTHENTICATED and refreshes the activity window.
func CheckHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		// The middleware guarantees a session; this is a safety net
		if !ok {
			fail(c, http.StatusUnauthorized, codeNotAuthenticated, "Not authenticated")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"authenticated": true,
			"user":          gin.H{"id": sess.UserID, "username": sess.Username, "role": sess.Role},
			"session":       sessionView(sess, store.Timeout()),
		})
	}
}
