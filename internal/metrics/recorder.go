package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"restock/internal/reconcile"
)

const namespace = "restock"

// Recorder holds the gauges describing the last run. Each Recorder owns its
// registry, so nothing leaks into the global default registry.
type Recorder struct {
	registry *prometheus.Registry

	sourceRecords    *prometheus.GaugeVec
	sourceUnique     *prometheus.GaugeVec
	sourceDuplicates *prometheus.GaugeVec
	reconciled       prometheus.Gauge
	reorders         prometheus.Gauge
	missingSuppliers prometheus.Gauge
	errorLines       prometheus.Gauge
	duration         prometheus.Gauge
	lastSuccess      prometheus.Gauge
}

// NewRecorder creates a Recorder with all gauges registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sourceRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_records",
			Help:      "Rows read from each source workbook.",
		}, []string{"source"}),
		sourceUnique: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_unique_codes",
			Help:      "Distinct item codes per source after aggregation.",
		}, []string{"source"}),
		sourceDuplicates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_duplicate_codes",
			Help:      "Rows per source whose code appeared again later and were aggregated.",
		}, []string{"source"}),
		reconciled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reconciled_items",
			Help:      "Items in the reconciled catalogue.",
		}),
		reorders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reorder_items",
			Help:      "Items below their minimum stock.",
		}),
		missingSuppliers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_supplier_items",
			Help:      "Items without a supplier.",
		}),
		errorLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "error_lines",
			Help:      "Lines written to the error sheet.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
	}

	r.registry.MustRegister(
		r.sourceRecords, r.sourceUnique, r.sourceDuplicates,
		r.reconciled, r.reorders, r.missingSuppliers, r.errorLines,
		r.duration, r.lastSuccess,
	)
	return r
}

// Observe records the outcome of a successful run.
func (r *Recorder) Observe(result *reconcile.Result, elapsed time.Duration, finished time.Time) {
	sources := []struct {
		source reconcile.Source
		stats  reconcile.SourceStats
	}{
		{reconcile.SourceSuppliers, result.Stats.Suppliers},
		{reconcile.SourceLedger, result.Stats.Ledger},
		{reconcile.SourceFloor, result.Stats.Floor},
	}
	for _, s := range sources {
		label := s.source.String()
		r.sourceRecords.WithLabelValues(label).Set(float64(s.stats.Records))
		r.sourceUnique.WithLabelValues(label).Set(float64(s.stats.Unique))
		r.sourceDuplicates.WithLabelValues(label).Set(float64(s.stats.Duplicates))
	}

	r.reconciled.Set(float64(result.Stats.Reconciled))
	r.reorders.Set(float64(result.Stats.Reorders))
	r.missingSuppliers.Set(float64(result.Stats.MissingSuppliers))
	r.errorLines.Set(float64(len(result.Errors)))
	r.duration.Set(elapsed.Seconds())
	r.lastSuccess.Set(float64(finished.Unix()))
}

// Gatherer exposes the registry, e.g. for tests or an HTTP handler.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in the text exposition format for the
// node exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
