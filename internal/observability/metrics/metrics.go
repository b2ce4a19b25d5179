package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics exposes counters/histograms for calls to the appointment
// webhook backend.
type WebhookMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Total requests to the appointment webhook backend",
		}, []string{"endpoint", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dental",
			Subsystem: "webhook",
			Name:      "request_latency_seconds",
			Help:      "Latency of appointment webhook backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *WebhookMetrics) ObserveRequest(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, status).Inc()
	m.requestLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RefreshMetrics tracks appointment snapshot refresh outcomes.
type RefreshMetrics struct {
	refreshTotal *prometheus.CounterVec
}

// Refresh outcomes.
const (
	RefreshApplied      = "applied"
	RefreshStaleDropped = "stale_dropped"
	RefreshError        = "error"
)

func NewRefreshMetrics(reg prometheus.Registerer) *RefreshMetrics {
	m := &RefreshMetrics{
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "appointments",
			Name:      "refresh_total",
			Help:      "Appointment snapshot refresh attempts by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.refreshTotal)
	return m
}

func (m *RefreshMetrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(outcome).Inc()
}
