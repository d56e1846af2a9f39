package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors: request-level HTTP
// metrics plus counters for order transitions and dispatch outcomes.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	transitionsTotal *prometheus.CounterVec
	dispatchesTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Successful order transitions by target status.",
		}, []string{"target"}),
		dispatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_dispatches_total",
			Help: "Dispatch attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.transitionsTotal, m.dispatchesTotal)
	return m
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			route := ctx.Path()
			method := ctx.Request().Method
			status := ctx.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveTransition counts one successful transition into the target status.
func (m *Metrics) ObserveTransition(target string) {
	m.transitionsTotal.WithLabelValues(target).Inc()
}

// ObserveDispatch counts one dispatch attempt by outcome.
func (m *Metrics) ObserveDispatch(outcome string) {
	m.dispatchesTotal.WithLabelValues(outcome).Inc()
}
