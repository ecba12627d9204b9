package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

const (
	namespace = "lms"
	pushJob   = "lms_migrate"
)

// Metrics records migration runs in a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
	pushURL     string
	logger      *slog.Logger
}

// New registers migration collectors. pushURL may be empty.
func New(pushURL string, logger *slog.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migration_runs_total",
			Help:      "Migration transitions by outcome.",
		}, []string{"migration", "direction", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "migration_duration_seconds",
			Help:      "Time spent in a migration transition.",
			Buckets:   []float64{.05, .25, 1, 5, 15, 60, 300, 900},
		}, []string{"migration", "direction"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "migration_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful transition.",
		}, []string{"migration", "direction"}),
		pushURL: pushURL,
		logger:  logger,
	}
	m.registry.MustRegister(
		m.runs,
		m.duration,
		m.lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMigration records one migration transition.
func (m *Metrics) ObserveMigration(name string, direction model.Direction, took time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.runs.WithLabelValues(name, string(direction), outcome).Inc()
	m.duration.WithLabelValues(name, string(direction)).Observe(took.Seconds())
	if err == nil {
		m.lastSuccess.WithLabelValues(name, string(direction)).SetToCurrentTime()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Push sends the registry to the pushgateway when one is configured.
func (m *Metrics) Push(ctx context.Context) error {
	if m.pushURL == "" {
		return nil
	}
	if err := push.New(m.pushURL, pushJob).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	m.logger.Debug("metrics pushed", slog.String("url", m.pushURL))
	return nil
}
