package middleware

import (
	"time"

	"slotline/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an id, stores a request-scoped zap
// logger under "logger" and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		logger := utils.GetLogger().With(
			zap.String("requestID", requestID),
			zap.String("clientIP", getClientIP(c)),
		)
		c.Set("requestID", requestID)
		c.Set("logger", logger)
		c.Header(utils.RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
