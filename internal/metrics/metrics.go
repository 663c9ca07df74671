// Package metrics provides Prometheus metrics for export runs.
//
// Each run owns a private registry so repeated runs in one process never
// share counters. At run end the registry can be written in the node
// exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

const (
	namespace = "assetbridge"
)

// Run holds the metrics of one export run.
type Run struct {
	registry *prometheus.Registry

	// ExportsTotal counts produced artifacts by kind.
	ExportsTotal *prometheus.CounterVec

	// ExportFailuresTotal counts failed exports by kind.
	ExportFailuresTotal *prometheus.CounterVec

	// UnsupportedTotal counts assets with no export strategy.
	UnsupportedTotal prometheus.Counter

	// ResolvedAssets is the size of the resolved selection.
	ResolvedAssets prometheus.Gauge

	// SkippedFolders is the number of folders that could not be expanded.
	SkippedFolders prometheus.Gauge

	// RunDuration is the wall time of the run in seconds.
	RunDuration prometheus.Gauge

	// LastRunTimestamp is the unix time the run finished.
	LastRunTimestamp prometheus.Gauge
}

// NewRun creates the metrics of a run on a fresh registry.
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Run{
		registry: reg,
		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of artifacts exported",
		}, []string{"kind"}),
		ExportFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_failures_total",
			Help:      "Total number of failed asset exports",
		}, []string{"kind"}),
		UnsupportedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unsupported_total",
			Help:      "Total number of selected assets with an unsupported type",
		}),
		ResolvedAssets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resolved_assets",
			Help:      "Number of assets in the resolved selection",
		}),
		SkippedFolders: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_folders",
			Help:      "Number of selected folders that could not be expanded",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the export run in seconds",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the export run finished",
		}),
	}
}

// Registry returns the run's registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSelection records the resolve step.
func (r *Run) ObserveSelection(resolved, skippedFolders int) {
	r.ResolvedAssets.Set(float64(resolved))
	r.SkippedFolders.Set(float64(skippedFolders))
}

// ObserveLedger records the accounting of a finished dispatch. Every
// exportable kind gets a series, zero included.
func (r *Run) ObserveLedger(snap ledger.Snapshot) {
	for _, k := range asset.Kinds {
		r.ExportsTotal.WithLabelValues(k.String()).Add(float64(snap.Counts[k]))
		r.ExportFailuresTotal.WithLabelValues(k.String()).Add(float64(snap.Failed[k]))
	}
	r.UnsupportedTotal.Add(float64(snap.Unsupported))
}

// Finish records the run duration and completion time.
func (r *Run) Finish(started, finished time.Time) {
	r.RunDuration.Set(finished.Sub(started).Seconds())
	r.LastRunTimestamp.Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry to path for the node exporter textfile collector.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile; %w", err)
	}
	return nil
}
