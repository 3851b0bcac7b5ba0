// Package metrics records orchestration runs as Prometheus metrics. The CLI
// writes them in textfile-collector format; there is no HTTP endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshharrison/taskflow/internal/engine"
)

const namespace = "taskflow"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder implements engine.Observer on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	duration       prometheus.Histogram
	tasks          prometheus.Histogram
	criticalTasks  prometheus.Gauge
	parallelGroups prometheus.Gauge
	projectHours   prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orchestrations_total",
			Help:      "Orchestration runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "orchestration_duration_seconds",
			Help:      "Wall time spent per orchestration run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		tasks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "orchestration_tasks",
			Help:      "Number of tasks per successful run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		criticalTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "critical_tasks",
			Help:      "Critical tasks in the most recent successful run.",
		}),
		parallelGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parallel_groups",
			Help:      "Parallel groups in the most recent successful run.",
		}),
		projectHours: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "project_duration_hours",
			Help:      "Critical path length of the most recent successful run.",
		}),
	}
	r.registry.MustRegister(r.runs, r.duration, r.tasks, r.criticalTasks, r.parallelGroups, r.projectHours)
	return r
}

// ObserveRun records one orchestration.
func (r *Recorder) ObserveRun(err error, elapsed time.Duration, stats engine.Stats) {
	r.duration.Observe(elapsed.Seconds())
	if err != nil {
		r.runs.WithLabelValues(OutcomeError).Inc()
		return
	}
	r.runs.WithLabelValues(OutcomeSuccess).Inc()
	r.tasks.Observe(float64(stats.TotalTasks))
	r.criticalTasks.Set(float64(stats.CriticalTasks))
	r.parallelGroups.Set(float64(stats.ParallelGroups))
	r.projectHours.Set(stats.LongestPath)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path in text exposition format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
