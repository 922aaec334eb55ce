package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CORSMiddleware applies the uniform CORS headers to every response. The
// origin is echoed back because credentialed (cookie) requests cannot use a
// wildcard origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)      // Echo the caller's origin
			c.Header("Access-Control-Allow-Credentials", "true") // Session cookie travels with requests
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS") // Allowed methods
		c.Header("Access-Control-Allow-Headers", "Content-Type")       // Allowed request headers
		// Preflight requests are answered immediately
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next() // Proceed to the next handler
	}
}
