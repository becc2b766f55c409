package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics exposes request-level instruments on the default registry.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facturador_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Metrics exposes billing-domain instruments.
type Metrics struct {
	invoicesCreated  prometheus.Counter
	invoicesOverdue  prometheus.Counter
	invoicesSettled  *prometheus.CounterVec
	paymentsRecorded prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		invoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_invoices_created_total",
			Help: "Invoices issued.",
		}),
		invoicesOverdue: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_invoices_overdue_total",
			Help: "Invoices transitioned to overdue by the status sweep.",
		}),
		invoicesSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_invoices_settled_total",
			Help: "Invoices marked paid, by origin.",
		}, []string{"origin"}),
		paymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_payments_recorded_total",
			Help: "Payments registered against invoices.",
		}),
	}
}

func (m *Metrics) RecordInvoiceCreated() {
	if m == nil {
		return
	}
	m.invoicesCreated.Inc()
}

// RecordOverdue adds the number of rows flipped by one sweep run.
func (m *Metrics) RecordOverdue(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.invoicesOverdue.Add(float64(count))
}

// RecordSettled counts a paid transition; origin is "manual" or "payment".
func (m *Metrics) RecordSettled(origin string) {
	if m == nil {
		return
	}
	m.invoicesSettled.WithLabelValues(strings.TrimSpace(origin)).Inc()
}

func (m *Metrics) RecordPayment() {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
}
