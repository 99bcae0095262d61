// Package metrics provides Prometheus metrics for roster import runs.
//
// A CLI run is short-lived, so metrics are collected in a private registry
// and can be dumped in the text exposition format for the node_exporter
// textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/reconcile"
)

const namespace = "roster"

// Run collects the metrics of one import run.
type Run struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	admittedTotal   *prometheus.CounterVec
	rejectedTotal   *prometheus.CounterVec
	duplicatesTotal prometheus.Counter
	replacedTotal   prometheus.Counter
	datasetRecords  prometheus.Gauge
	runDuration     prometheus.Gauge
	lastSuccessTS   prometheus.Gauge
}

// New creates the run metrics in a fresh registry.
func New() *Run {
	r := &Run{registry: prometheus.NewRegistry()}

	r.filesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "files_total",
		Help:      "Number of source files parsed, by format",
	}, []string{"format"})
	r.admittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "records_admitted_total",
		Help:      "Number of records admitted by the validation gate, by format",
	}, []string{"format"})
	r.rejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "records_rejected_total",
		Help:      "Number of records dropped by the validation gate, by format and reason",
	}, []string{"format", "reason"})
	r.duplicatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconcile",
		Name:      "duplicates_total",
		Help:      "Number of records sharing an identity key with an earlier record",
	})
	r.replacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconcile",
		Name:      "replaced_total",
		Help:      "Number of kept records displaced by a newer one",
	})
	r.datasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_records",
		Help:      "Number of records in the merged dataset",
	})
	r.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of the last import run",
	})
	r.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful import run",
	})

	r.registry.MustRegister(
		r.filesTotal,
		r.admittedTotal,
		r.rejectedTotal,
		r.duplicatesTotal,
		r.replacedTotal,
		r.datasetRecords,
		r.runDuration,
		r.lastSuccessTS,
	)
	return r
}

// Registry returns the registry holding the run metrics.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveFile records the statistics of one parsed file.
func (r *Run) ObserveFile(stat importer.FileStat) {
	format := stat.Format.String()
	r.filesTotal.WithLabelValues(format).Inc()
	r.admittedTotal.WithLabelValues(format).Add(float64(stat.Admitted))
	for reason, n := range stat.Rejected {
		r.rejectedTotal.WithLabelValues(format, string(reason)).Add(float64(n))
	}
}

// ObserveReconcile records the outcome of deduplication.
func (r *Run) ObserveReconcile(result *reconcile.Result) {
	r.duplicatesTotal.Add(float64(result.Duplicates))
	r.replacedTotal.Add(float64(len(result.Replaced)))
	r.datasetRecords.Set(float64(len(result.Records)))
}

// ObserveSuccess records a completed run.
func (r *Run) ObserveSuccess(started, finished time.Time) {
	r.runDuration.Set(finished.Sub(started).Seconds())
	r.lastSuccessTS.Set(float64(finished.Unix()))
}

// WriteTextfile writes the metrics to path in the text exposition format.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
