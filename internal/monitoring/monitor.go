package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Monitor collects service metrics: prometheus counters scraped on the
// metrics port, plus a free-form snapshot map for the internal status
// endpoint.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	requests *prometheus.CounterVec
	charges  prometheus.Counter
	chatReqs prometheus.Counter
	chatErrs prometheus.Counter
}

// NewMonitor creates a monitor with its collectors registered on a private
// registry so tests can build as many monitors as they like.
func NewMonitor() *Monitor {
	m := &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logisnap_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		charges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logisnap_billing_charges_total",
			Help: "Charges produced by billing rule evaluation.",
		}),
		chatReqs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logisnap_chat_requests_total",
			Help: "Assistant chat requests.",
		}),
		chatErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logisnap_chat_failures_total",
			Help: "Assistant chat requests that fell back to the apology reply.",
		}),
	}
	return m
}

// Register attaches the monitor's collectors to a prometheus registry.
func (m *Monitor) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.requests, m.charges, m.chatReqs, m.chatErrs)
}

// GinMiddleware counts every handled request.
func (m *Monitor) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.requests.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// RecordCharges counts charges produced by a billing evaluation.
func (m *Monitor) RecordCharges(n int) {
	m.charges.Add(float64(n))
}

// RecordChat counts one assistant exchange; failed marks the apology
// fallback path.
func (m *Monitor) RecordChat(failed bool) {
	m.chatReqs.Inc()
	if failed {
		m.chatErrs.Inc()
	}
}

// RecordMetric records a snapshot value.
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetrics returns all snapshot values plus system metrics.
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return metrics
}

// StatusHandler serves the snapshot map as JSON on the metrics server.
func (m *Monitor) StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, m.GetMetrics())
	}
}
