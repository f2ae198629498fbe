// Package metrics exposes Prometheus collectors for the store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

var (
	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "electrohub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "electrohub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	OrdersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "electrohub_orders_placed_total",
			Help: "Orders placed by payment method",
		},
		[]string{"payment_method"},
	)

	PlacementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "electrohub_order_placement_failures_total",
			Help: "Order placements that did not complete, by reason",
		},
		[]string{"reason"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "electrohub_notifications_total",
			Help: "Order confirmation delivery outcomes by result",
		},
		[]string{"result"},
	)

	// MailCircuitState tracks mail circuit breaker state (0=closed, 1=open, 2=half-open).
	MailCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "electrohub_mail_circuit_state",
			Help: "Mail circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit"},
	)
)

// Recorder reports order workflow outcomes to the package collectors.
type Recorder struct{}

// NewRecorder constructs Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (*Recorder) OrderPlaced(method model.PaymentMethod) {
	OrdersPlaced.WithLabelValues(string(method)).Inc()
}

func (*Recorder) PlacementFailed(reason string) {
	PlacementFailures.WithLabelValues(reason).Inc()
}

func (*Recorder) Notification(result string) {
	Notifications.WithLabelValues(result).Inc()
}

// Middleware collects request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
