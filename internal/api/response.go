package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SuccessResponse builds the envelope every handler in this package
// returns on the happy path, grounded in the teacher's response.go.
func SuccessResponse(message string, data interface{}) gin.H {
	resp := gin.H{
		"success":   true,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}
	if data != nil {
		resp["data"] = data
	}
	return resp
}

// ErrorResponse builds the envelope every handler returns on failure.
func ErrorResponse(code, message string) gin.H {
	return gin.H{
		"success":   false,
		"error":     code,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}
}
