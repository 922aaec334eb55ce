package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Machine-readable error codes carried in failure envelopes
const (
	codeNotAuthenticated   = "NOT_AUTHENTICATED"
	codeSessionExpired     = "SESSION_EXPIRED"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeForbidden          = "FORBIDDEN"
	codeValidationError    = "VALIDATION_ERROR"
	codeNotFound           = "NOT_FOUND"
	codeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	codeInternalError      = "INTERNAL_ERROR"
)

// fail writes the uniform failure envelope: {success:false, message, error_code}
func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"success": false, "message": message, "error_code": code})
}

// failValidation rejects invalid input. Validation failures are always 400;
// the mixed 200/400 convention of older POS frontends is deliberately not kept.
func failValidation(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, codeValidationError, message)
}

// failInternal hides driver internals behind a generic message
func failInternal(c *gin.Context, message string) {
	fail(c, http.StatusInternalServerError, codeInternalError, message)
}

// NoMethodHandler rejects requests whose path exists but method does not match
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
	}
}

// NoRouteHandler keeps unknown paths inside the JSON envelope too
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fail(c, http.StatusNotFound, codeNotFound, "Not found")
	}
}
