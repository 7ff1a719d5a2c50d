package devserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics uses a private registry so two servers in one process (as happens
// in tests) never collide on metric names.
type metrics struct {
	registry        *prometheus.Registry
	connections     prometheus.Counter
	events          *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	sessionsCreated prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		connections: factory.NewCounter(prometheus.CounterOpts{
			Name: "quizez_connections_total",
			Help: "WebSocket connections accepted.",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quizez_events_total",
			Help: "Client events processed, by event name.",
		}, []string{"event"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quizez_active_sessions",
			Help: "Sessions currently live.",
		}),
		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "quizez_sessions_created_total",
			Help: "Sessions created since the server started.",
		}),
	}
}
