// Package metrics records per-run gauges for mlbhits and writes them in the
// Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Option applies a configuration option to a Run.
type Option func(*Run)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Run) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// Run holds the gauges of one command invocation on a private registry.
type Run struct {
	namespace string
	command   string
	started   time.Time
	registry  *prometheus.Registry

	stageRows   *prometheus.GaugeVec
	hits        prometheus.Gauge
	accuracy    prometheus.Gauge
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
	lastSuccess prometheus.Gauge
	status      *prometheus.GaugeVec
}

// NewRun starts the clock for command.
func NewRun(command string, opts ...Option) *Run {
	r := &Run{
		namespace: "mlbhits",
		command:   command,
		started:   time.Now(),
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	labels := prometheus.Labels{"command": command}
	r.stageRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "stage_rows",
		Help:        "Rows remaining after each pipeline stage",
		ConstLabels: labels,
	}, []string{"stage"})
	r.hits = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "predicted_hits",
		Help:        "Rows predicted as hits in the last run",
		ConstLabels: labels,
	})
	r.accuracy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "holdout_accuracy",
		Help:        "Held-out accuracy of the last trained model",
		ConstLabels: labels,
	})
	r.duration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall time of the last run",
		ConstLabels: labels,
	})
	r.lastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time the last run finished",
		ConstLabels: labels,
	})
	r.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time the last run finished without failing",
		ConstLabels: labels,
	})
	r.status = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "run_status",
		Help:        "1 for the status of the last run, 0 otherwise",
		ConstLabels: labels,
	}, []string{"status"})
	return r
}

// Registry exposes the run's registry.
func (r *Run) Registry() *prometheus.Registry { return r.registry }

// Stage sets the row count after stage.
func (r *Run) Stage(stage string, rows int) {
	r.stageRows.WithLabelValues(stage).Set(float64(rows))
}

// Hits sets the predicted-hit count.
func (r *Run) Hits(n int) { r.hits.Set(float64(n)) }

// Accuracy sets the held-out accuracy.
func (r *Run) Accuracy(v float64) { r.accuracy.Set(v) }

// Finish stamps duration and status. status is ok, empty or failed.
func (r *Run) Finish(status string) {
	now := time.Now()
	r.duration.Set(now.Sub(r.started).Seconds())
	r.lastRun.Set(float64(now.Unix()))
	if status != "failed" {
		r.lastSuccess.Set(float64(now.Unix()))
	}
	for _, s := range []string{"ok", "empty", "failed"} {
		v := 0.0
		if s == status {
			v = 1
		}
		r.status.WithLabelValues(s).Set(v)
	}
}

// WriteTextfile writes the registry to path in the text exposition format.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
