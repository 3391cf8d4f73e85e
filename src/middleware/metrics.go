package middleware

import (
	"strconv"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and duration per route
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		// route template, so ids do not explode label cardinality
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		method := ctx.Request.Method

		m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}
