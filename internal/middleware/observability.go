package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panda-server/internal/metrics"
	"panda-server/internal/utils"
)

// MetricsMiddleware records request count, latency and in-flight requests.
// Paths are labelled with the route template to keep cardinality bounded.
func MetricsMiddleware(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlightGauge.Inc()
		defer m.InFlightGauge.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// LoggerMiddleware logs one line per request, tagged with the token subject
// when the request was authenticated.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("language", utils.Language(c)),
			zap.String("client_ip", c.ClientIP()),
		}
		if subject, ok := GetSubjectFromContext(c); ok {
			fields = append(fields, zap.String("subject", subject))
		}
		log.Info("request", fields...)
	}
}
