package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics captures request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetrics(prometheus.DefaultRegisterer)
}

func newHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "casedesk_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casedesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// GinMiddleware records one observation per request.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// EscalationMetrics captures SLA run health signals.
type EscalationMetrics struct {
	runs        prometheus.Counter
	runDuration prometheus.Histogram
	checked     prometheus.Counter
	sent        prometheus.Counter
	skipped     prometheus.Counter
	errors      prometheus.Counter
}

func NewEscalationMetrics() *EscalationMetrics {
	return newEscalationMetrics(prometheus.DefaultRegisterer)
}

func newEscalationMetrics(reg prometheus.Registerer) *EscalationMetrics {
	factory := promauto.With(reg)
	return &EscalationMetrics{
		runs: factory.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_escalation_runs_total",
			Help: "Completed escalation passes.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "casedesk_escalation_run_duration_seconds",
			Help:    "Escalation pass duration.",
			Buckets: prometheus.DefBuckets,
		}),
		checked: factory.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_escalation_submissions_checked_total",
			Help: "Submissions examined by escalation passes.",
		}),
		sent: factory.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_escalation_alerts_sent_total",
			Help: "SLA alerts dispatched.",
		}),
		skipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_escalation_alerts_skipped_total",
			Help: "SLA alerts suppressed by the dedup ledger.",
		}),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_escalation_errors_total",
			Help: "Ledger or dispatch failures during escalation passes.",
		}),
	}
}

func (m *EscalationMetrics) ObserveRun(d time.Duration, checked, sent, skipped, errs int) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Observe(d.Seconds())
	m.checked.Add(float64(checked))
	m.sent.Add(float64(sent))
	m.skipped.Add(float64(skipped))
	m.errors.Add(float64(errs))
}
