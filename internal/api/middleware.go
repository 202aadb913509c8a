package api

import (
	"errors"
	"log"
	"net/http"

	"stargazer/exercise-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys and headers
const (
	ContextRequestIDKey = "requestID"
	HeaderRequestID     = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an ID, reusing the caller's when supplied.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// ErrorResponder renders errors handlers pushed with c.Error as plain text:
// 400 for validation failures, 500 for everything else.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrValidationFailed) {
			code = http.StatusBadRequest
		}
		log.Printf("ERROR: [%s] %s %s: %v", c.GetString(ContextRequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		c.String(code, err.Error())
	}
}

// respondError answers client errors directly and hands store failures to ErrorResponder.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		c.String(http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
	}
}
