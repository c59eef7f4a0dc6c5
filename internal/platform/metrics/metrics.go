// Package metrics exposes allocation engine and HTTP counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "backoffice"

// Metrics implements services.AllocationMetrics.
type Metrics struct {
	paymentsRecorded    *prometheus.CounterVec
	creditsCreated      prometheus.Counter
	creditCreatedAmount prometheus.Counter
	creditApplied       prometheus.Counter
	allocationFailures  *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer in production
// and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		paymentsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payments recorded, by allocation mode.",
		}, []string{"mode"}),
		creditsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_created_total",
			Help:      "Credits created from overpayments.",
		}),
		creditCreatedAmount: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_created_amount_total",
			Help:      "Sum of the face value of created credits.",
		}),
		creditApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_applied_amount_total",
			Help:      "Sum of credit consumed against obligations.",
		}),
		allocationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_failures_total",
			Help:      "Allocation operations that returned an error.",
		}, []string{"operation"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) PaymentRecorded(mode string, _ decimal.Decimal) {
	m.paymentsRecorded.WithLabelValues(mode).Inc()
}

func (m *Metrics) CreditCreated(amount decimal.Decimal) {
	m.creditsCreated.Inc()
	m.creditCreatedAmount.Add(amount.InexactFloat64())
}

func (m *Metrics) CreditApplied(amount decimal.Decimal) {
	if amount.IsPositive() {
		m.creditApplied.Add(amount.InexactFloat64())
	}
}

func (m *Metrics) AllocationFailed(operation string) {
	m.allocationFailures.WithLabelValues(operation).Inc()
}

// GinMiddleware observes request latency labelled by route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
