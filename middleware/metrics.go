package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/services"
)

// Metrics records request latency per route. The route template is used as
// the label, not the raw path, to keep cardinality bounded.
func Metrics(m *services.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
