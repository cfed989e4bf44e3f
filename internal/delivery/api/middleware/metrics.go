package middleware

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latencies by route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
	skip    string
}

// NewMetricsMiddleware creates the middleware. Requests to skipPath are not recorded.
func NewMetricsMiddleware(m *metrics.Metrics, skipPath string) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m, skip: skipPath}
}

// Handle must run outside the middleware that commits errors so it sees the final status.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == m.skip {
			return err
		}
		if path == "" || (c.Response().Status == http.StatusNotFound && path == "/*") {
			path = unmatchedRoute
		}

		method := c.Request().Method
		status := strconv.Itoa(c.Response().Status)
		m.metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
