package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP and marketplace collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bidsSubmitted   prometheus.Counter
	bidsAccepted    prometheus.Counter
	deliveries      *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		bidsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_bids_submitted_total",
			Help: "Bids submitted or renewed by drivers",
		}),
		bidsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_bids_accepted_total",
			Help: "Bids accepted by customers",
		}),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketplace_deliveries_total",
				Help: "Orders delivered, by confirmation path",
			},
			[]string{"path"},
		),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.bidsSubmitted, m.bidsAccepted, m.deliveries)
	return m
}

// Middleware records every request. Handler errors are rendered here so the
// recorded status is the one the client receives.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// BidSubmitted counts a stored bid.
func (m *Metrics) BidSubmitted() {
	m.bidsSubmitted.Inc()
}

// BidAccepted counts an award.
func (m *Metrics) BidAccepted() {
	m.bidsAccepted.Inc()
}

// Delivered counts a delivery confirmed manually or by code.
func (m *Metrics) Delivered(path string) {
	m.deliveries.WithLabelValues(path).Inc()
}
