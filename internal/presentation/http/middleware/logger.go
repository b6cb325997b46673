package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/pkg/utils"
)

// LoggerMiddleware creates a structured logging middleware
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generate request ID if not present
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.NewRequestID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(infraRepo.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			utils.ShortID(requestID),
			c.Request.Method,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			GetOperatorID(c),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", utils.ShortID(requestID), e.Err)
		}
	}
}
