package server

import (
	"github.com/practice-sem-2/messenger-service/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "messenger"

// Metrics is safe to use as a nil pointer, in which case nothing is recorded.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	events      *prometheus.CounterVec
	clients     prometheus.Gauge
	slowClients prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "hub_invocations_total",
			Help:      "Hub invocations by hub, target and error kind.",
		}, []string{"hub", "target", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "hub_invocation_duration_seconds",
			Help:      "Time spent handling hub invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"hub", "target"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "hub_events_delivered_total",
			Help:      "Events queued to live connections.",
		}, []string{"hub", "target"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hub_clients",
			Help:      "Connected websocket clients.",
		}),
		slowClients: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "hub_slow_clients_total",
			Help:      "Clients dropped because their send buffer was full.",
		}),
	}

	reg.MustRegister(m.invocations, m.duration, m.events, m.clients, m.slowClients)
	return m
}

func (m *Metrics) Invocation(hub models.Hub, target, result string, seconds float64) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(string(hub), target, result).Inc()
	m.duration.WithLabelValues(string(hub), target).Observe(seconds)
}

func (m *Metrics) EventsDelivered(hub models.Hub, target string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.events.WithLabelValues(string(hub), target).Add(float64(count))
}

func (m *Metrics) SetClients(count int) {
	if m == nil {
		return
	}
	m.clients.Set(float64(count))
}

func (m *Metrics) SlowClient() {
	if m == nil {
		return
	}
	m.slowClients.Inc()
}

// PresenceStats reports the size of the presence registry.
type PresenceStats interface {
	Stats() (connections, channels int)
}

// RegisterPresence exports presence sizes as gauges read at scrape time.
func RegisterPresence(reg prometheus.Registerer, presence PresenceStats) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "presence_connections",
			Help:      "Live connections known to presence.",
		}, func() float64 {
			connections, _ := presence.Stats()
			return float64(connections)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "presence_channels",
			Help:      "Broadcast channels with at least one live connection.",
		}, func() float64 {
			_, channels := presence.Stats()
			return float64(channels)
		}),
	)
}
