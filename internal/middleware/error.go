package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/internal/apperrors"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AbortWithError records err on the context and writes it as JSON.
func AbortWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err, "resource")
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.StatusCode(), ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}

// ErrorHandler recovers panics into a JSON 500 and renders errors attached
// with c.Error when the handler wrote no response.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.Any("error", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Code:  string(apperrors.CodeInternal),
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperrors.From(c.Errors.Last().Err, "resource")
		c.JSON(appErr.StatusCode(), ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)})
	}
}
