package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cr4te/internal/mediatype"
)

// Run holds the metrics of one build invocation.
type Run struct {
	registry *prometheus.Registry

	FilesClassified    *prometheus.CounterVec
	CreatorsBuilt      prometheus.Counter
	ProjectsBuilt      prometheus.Counter
	Warnings           *prometheus.CounterVec
	BuildDuration      prometheus.Gauge
	LastBuildTimestamp prometheus.Gauge
}

// NewRun registers a fresh metric set on a private registry.
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	run := &Run{
		registry: reg,
		FilesClassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cr4te_files_classified_total",
				Help: "Media files placed into a media group, by media type",
			},
			[]string{"type"},
		),
		CreatorsBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cr4te_creators_built_total",
				Help: "Creator records assembled",
			},
		),
		ProjectsBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cr4te_projects_built_total",
				Help: "Project records assembled",
			},
		),
		Warnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cr4te_warnings_total",
				Help: "Recoverable warnings emitted during the build, by event type",
			},
			[]string{"event_type"},
		),
		BuildDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cr4te_build_duration_seconds",
				Help: "Duration of the last build in seconds",
			},
		),
		LastBuildTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cr4te_last_build_timestamp_seconds",
				Help: "Unix time of the last completed build",
			},
		),
	}
	for _, kind := range mediatype.All {
		run.FilesClassified.WithLabelValues(kind.String())
	}
	return run
}

// Registry exposes the underlying registry for gathering.
func (r *Run) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFile counts one classified file. Unclassified kinds are ignored.
// Safe on a nil Run.
func (r *Run) ObserveFile(kind mediatype.MediaType) {
	if r == nil || !kind.Valid() {
		return
	}
	r.FilesClassified.WithLabelValues(kind.String()).Inc()
}

// ObserveWarning counts one warning. Safe on a nil Run.
func (r *Run) ObserveWarning(eventType string) {
	if r == nil {
		return
	}
	if eventType == "" {
		eventType = "unspecified"
	}
	r.Warnings.WithLabelValues(eventType).Inc()
}

// ObserveCreator counts one creator and its projects. Safe on a nil Run.
func (r *Run) ObserveCreator(projects int) {
	if r == nil {
		return
	}
	r.CreatorsBuilt.Inc()
	r.ProjectsBuilt.Add(float64(projects))
}

// Finish records the duration of a build that started at start.
func (r *Run) Finish(start time.Time) {
	if r == nil {
		return
	}
	now := time.Now()
	r.BuildDuration.Set(now.Sub(start).Seconds())
	r.LastBuildTimestamp.Set(float64(now.Unix()))
}

// WriteTextfile writes the registry to path in the textfile collector format.
func (r *Run) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
