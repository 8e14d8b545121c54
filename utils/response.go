package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONValidationError sends the full list of field violations
func JSONValidationError(c *gin.Context, status int, fieldErrors any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"errors":  fieldErrors,
	})
}

// JSONMessage sends a bare {"message": ...} body, used where callers expect no envelope
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
