package middleware

import (
	"net/http"

	"go-candidate-admin/internal/delivery/http/response"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler turns the last error attached with c.Error into the JSON
// envelope. Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if appErr, ok := apperror.As(err); ok {
			if appErr.Code >= 500 {
				logger.Log.Error("request failed",
					zap.String("kind", string(appErr.Kind)),
					zap.String("request_id", requestID(c)),
					zap.Error(err),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
			return
		}

		// never expose internal error details to clients
		logger.Log.Error("unhandled error",
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
