// Package metrics exposes prometheus collectors for swipe sessions.
package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawsprefs/paws/internal/model"
	"github.com/pawsprefs/paws/internal/session"
)

var (
	once sync.Once

	sessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paws_sessions_started_total",
			Help: "Session starts and restarts.",
		},
	)

	decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paws_decisions_total",
			Help: "Applied decisions by kind (like/skip).",
		},
		[]string{"decision"},
	)

	generationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paws_generation_failures_total",
			Help: "Deck generations that returned an error.",
		},
	)

	staleGenerations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paws_stale_generations_total",
			Help: "Generation results discarded because a newer start superseded them.",
		},
	)

	generationLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paws_generation_latency_ms",
			Help:    "Deck generation latency in milliseconds.",
			Buckets: []float64{1, 5, 25, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"success"},
	)

	liveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "paws_live_sessions",
			Help: "Sessions currently held by the HTTP registry.",
		},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			sessionsStarted, decisions,
			generationFailures, staleGenerations,
			generationLatencyMs, liveSessions,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SessionStarted counts a start or restart.
func SessionStarted() { sessionsStarted.Inc() }

// DecisionApplied counts an applied decision.
func DecisionApplied(d model.Decision) { decisions.WithLabelValues(d.String()).Inc() }

// StaleGeneration counts a discarded generation result.
func StaleGeneration() { staleGenerations.Inc() }

// SetLiveSessions reports the registry size.
func SetLiveSessions(n int) { liveSessions.Set(float64(n)) }

// ObserveGeneration records latency and failure of one generation.
func ObserveGeneration(d time.Duration, err error) {
	success := "true"
	if err != nil {
		success = "false"
		generationFailures.Inc()
	}
	generationLatencyMs.WithLabelValues(success).Observe(float64(d.Milliseconds()))
}

// InstrumentGenerator wraps gen so every call is timed and failures counted.
func InstrumentGenerator(gen session.Generator) session.Generator {
	return session.GeneratorFunc(func(ctx context.Context, count int) ([]model.CatProfile, error) {
		start := time.Now()
		cats, err := gen.Generate(ctx, count)
		ObserveGeneration(time.Since(start), err)
		return cats, err
	})
}
