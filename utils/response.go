// utils/response.go
package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Message string       `json:"message"`
	Errors  []string     `json:"errors,omitempty"`
	Meta    ResponseMeta `json:"meta"`
}

type ResponseMeta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

func newMeta() ResponseMeta {
	return ResponseMeta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: uuid.New().String(),
	}
}

// RespondWithData writes a success envelope
func RespondWithData(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    newMeta(),
	})
}

// RespondWithError writes a failure envelope
func RespondWithError(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
		Meta:    newMeta(),
	})
}

// AbortWithError writes a failure envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Message: message,
		Meta:    newMeta(),
	})
}
