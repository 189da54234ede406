package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bitshala/admin/internal/service"
)

// Metrics times every request and records it against the route pattern,
// so /weekly_data/3 and /weekly_data/4 land in the same series. A nil
// service turns the middleware into a passthrough, which is how the
// gateway runs when Prometheus is disabled.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched requests (404s) have no pattern.
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
