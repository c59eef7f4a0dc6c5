package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ portssvc.AllocationMetrics = (*metrics.Metrics)(nil)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.PaymentRecorded("targeted", decimal.NewFromInt(50))
	m.PaymentRecorded("targeted", decimal.NewFromInt(10))
	m.PaymentRecorded("general", decimal.NewFromInt(10))
	m.CreditCreated(decimal.RequireFromString("20.50"))
	m.CreditApplied(decimal.NewFromInt(15))
	m.CreditApplied(decimal.Zero)
	m.AllocationFailed("edit_payment")

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			key := f.GetName()
			for _, l := range metric.GetLabel() {
				key += "/" + l.GetValue()
			}
			values[key] = metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 2.0, values["backoffice_payments_recorded_total/targeted"])
	assert.Equal(t, 1.0, values["backoffice_payments_recorded_total/general"])
	assert.Equal(t, 1.0, values["backoffice_credits_created_total"])
	assert.InDelta(t, 20.5, values["backoffice_credit_created_amount_total"], 1e-9)
	assert.InDelta(t, 15.0, values["backoffice_credit_applied_amount_total"], 1e-9)
	assert.Equal(t, 1.0, values["backoffice_allocation_failures_total/edit_payment"])
}

func TestMetrics_GinMiddlewareObservesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/payments/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/payments/p1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := testutil.GatherAndCount(reg, "backoffice_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
