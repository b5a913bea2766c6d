// Package response renders the JSON envelope every endpoint speaks:
// {"success": true, "data": ...} on the happy path, and
// {"success": false, "error": {"code", "message", "details"}} otherwise.
// Error codes are stable machine-readable strings (NOT_FOUND,
// VALIDATION_ERROR, MISSING_REQUIRED_FIELDS, ...); messages are for humans.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// ErrorWithDetails attaches structured context to the error body, e.g. the
// missing_fields list of a rejected booking or the bookings_count behind a
// blocked row deletion.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message, "details": details},
	})
}
