package middleware

import (
	"strconv"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics counts requests and observes their latency per route
func RequestMetrics(m *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.GaugeRequests.Inc()
		begin := time.Now()

		err := c.Next()

		m.GaugeRequests.Dec()
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		statusCode := strconv.Itoa(status)

		m.CounterRequests.With(prometheus.Labels{
			"method": c.Method(),
			"status": statusCode,
		}).Inc()
		m.HistogramRequestDuration.WithLabelValues(c.Route().Path, c.Method(), statusCode).
			Observe(time.Since(begin).Seconds())

		return err
	}
}
