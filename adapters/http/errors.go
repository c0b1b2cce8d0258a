package http

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// ErrorMiddleware renders the last error recorded with c.Error. Internal causes are
// logged, never returned.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err)
		status := apperror.ToHTTPStatus(appErr)

		reqID := c.GetString(GinContextKeyRequestID)
		if status >= 500 {
			log.Error("Request failed", appErr, zap.String("request_id", reqID), zap.String("path", c.Request.URL.Path))
		} else {
			log.Debug("Request rejected", zap.String("request_id", reqID), zap.String("error", appErr.Error()))
		}

		if appErr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(appErr.RetryAfter.Seconds()))))
		}
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}
