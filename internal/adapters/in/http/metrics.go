package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the HTTP surface and the
// notification broker.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	BrokerSubscribers prometheus.Gauge
}

// NewMetrics creates and registers the collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		BrokerSubscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "courier_status_subscribers",
				Help: "Number of live courier status subscriptions",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.BrokerSubscribers)
	return m
}

// Middleware records a counter and a duration sample per request, labeled
// by the route pattern rather than the raw path to keep cardinality bounded.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		method := c.Request().Method

		status := c.Response().Status
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
		}

		m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
