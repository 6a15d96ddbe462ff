// Package metrics exposes quiz counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "health_quiz"

// Metrics holds the collectors of the bot. It uses its own registry
// instead of prometheus.DefaultRegisterer.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	celebrations      *prometheus.CounterVec
	answers           *prometheus.CounterVec
	coinsAwarded      prometheus.Counter
	sessionsDisposed  prometheus.Counter
	activeSessions    prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		sessionsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_started_total",
				Help:      "Total number of quiz sessions started, partitioned by game.",
			},
			[]string{"game"},
		),
		sessionsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_completed_total",
				Help:      "Total number of quiz runs finished, partitioned by game.",
			},
			[]string{"game"},
		),
		celebrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "celebrations_total",
				Help:      "Total number of runs that reached the celebration threshold.",
			},
			[]string{"game"},
		),
		answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_total",
				Help:      "Total number of accepted answers, partitioned by game and result.",
			},
			[]string{"game", "result"},
		),
		coinsAwarded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coins_awarded_total",
				Help:      "Total number of coins awarded for correct answers.",
			},
		),
		sessionsDisposed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_disposed_total",
				Help:      "Total number of idle sessions disposed by the janitor.",
			},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of sessions currently kept in memory.",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionStarted(gameID string) {
	m.sessionsStarted.WithLabelValues(gameID).Inc()
}

func (m *Metrics) AnswerRecorded(gameID string, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.answers.WithLabelValues(gameID, result).Inc()
}

func (m *Metrics) CoinsAwarded(coins int) {
	if coins > 0 {
		m.coinsAwarded.Add(float64(coins))
	}
}

func (m *Metrics) SessionCompleted(gameID string, celebrated bool) {
	m.sessionsCompleted.WithLabelValues(gameID).Inc()
	if celebrated {
		m.celebrations.WithLabelValues(gameID).Inc()
	}
}

func (m *Metrics) SessionsDisposed(n int) {
	if n > 0 {
		m.sessionsDisposed.Add(float64(n))
	}
}

func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}
