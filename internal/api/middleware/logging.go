package middleware

import (
	"time"

	"github.com/proman-app/proman/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request through the application logger.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			c.Writer.Size(),
			latency.String(),
		)
	}
}
