// Package metrics exposes Prometheus metrics for the console: HTTP
// request counts and latencies plus a counter for status-lifecycle
// transitions per collection and outcome.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the console.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	StatusTransitions *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry and
// returns the metrics alongside the registry's HTTP handler.
func New() (*Metrics, echo.HandlerFunc) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "HTTP requests handled, by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "HTTP request latency, by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_status_transitions_total",
			Help: "Status lifecycle transitions attempted, by collection and outcome",
		}, []string{"collection", "outcome"}),
	}

	handler := echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return m, handler
}

// Middleware records one observation per handled request.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			m.HTTPRequests.WithLabelValues(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
			).Inc()
			m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordTransition counts one attempted status transition.
func (m *Metrics) RecordTransition(collection string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StatusTransitions.WithLabelValues(collection, outcome).Inc()
}
