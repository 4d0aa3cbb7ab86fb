package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError represents an error response from the API
// @Description API Error Response
type APIError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e APIError) Error() string {
	return e.Message
}

// ErrorHandler converts handler errors into the structured JSON error body.
// No failure escapes the boundary uncaught.
func ErrorHandler(fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil {
			return
		}
		var apiErr APIError
		if errors.As(err, &apiErr) {
			c.AbortWithStatusJSON(apiErr.Code, apiErr)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}
