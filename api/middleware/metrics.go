package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors. The Observe methods
// are no-ops on a nil *Metrics.
type Metrics struct {
	reg             *prom.Registry
	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
	upstream        *prom.HistogramVec
	cacheLookups    *prom.CounterVec
	webhooks        *prom.CounterVec
}

// NewMetrics registers the collectors on reg, or on a fresh registry when
// reg is nil.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		reg: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "genie",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "genie",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "method"}),
		upstream: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "genie",
			Name:      "upstream_duration_seconds",
			Help:      "Summarization API call latency by operation and outcome",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		}, []string{"op", "result"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "genie",
			Name:      "summary_cache_lookups_total",
			Help:      "Summary cache lookups by result",
		}, []string{"result"}),
		webhooks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "genie",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by final result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.upstream, m.cacheLookups, m.webhooks)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prom.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Middleware counts requests and observes their latency. Routes are
// labelled by their pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveUpstream records one summarization API call.
func (m *Metrics) ObserveUpstream(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.upstream.WithLabelValues(op, result).Observe(d.Seconds())
}

// ObserveCache records a summary cache lookup ("hit" or "miss").
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveWebhook records the final outcome of a webhook delivery.
func (m *Metrics) ObserveWebhook(err error) {
	if m == nil {
		return
	}
	result := "delivered"
	if err != nil {
		result = "failed"
	}
	m.webhooks.WithLabelValues(result).Inc()
}
