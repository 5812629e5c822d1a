package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	metricsprom "github.com/opsbench/devops-api/pkg/adapters/metrics/prometheus"
)

// requestIDHeader carries the correlation ID across services.
const requestIDHeader = "X-Request-ID"

// pathUnmatched labels requests that hit no registered route, keeping
// metric cardinality bounded.
const pathUnmatched = "unmatched"

// requestIDMiddleware assigns a request ID when the client did not send one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}

// requestLogger is a middleware for request logging
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}

// metricsMiddleware instruments every route with request count, latency
// and response size metrics
func metricsMiddleware(collector *metricsprom.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		collector.IncRequestsInFlight()
		c.Next()
		collector.DecRequestsInFlight()

		// FullPath is the registered route pattern; it is empty for
		// requests that matched no route.
		path := c.FullPath()
		if path == "" {
			path = pathUnmatched
		}

		collector.ObserveRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

// corsMiddleware allows cross-origin access to the API surface
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
