// Package metrics exposes the Prometheus instrumentation for the forensic
// analysis pipeline: rows dropped during parsing, detector work-cap aborts,
// and end-to-end analyze latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rowsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muletrace_rows_dropped_total",
		Help: "Total number of transaction rows dropped during parsing, by reason.",
	}, []string{"reason"})

	detectorAbortedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muletrace_detector_aborted_total",
		Help: "Total number of detector runs that hit a safety work cap and stopped early.",
	}, []string{"detector"})

	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "muletrace_analyze_duration_seconds",
		Help:    "Wall-clock duration of a complete Analyze call.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms .. ~41s
	})

	accountsFlagged = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "muletrace_analyze_accounts_flagged",
		Help: "Number of suspicious accounts flagged by the most recently completed analysis.",
	})
)

// RecordRowsDropped increments the drop counter for the given reason.
func RecordRowsDropped(reason string, n int) {
	if n <= 0 {
		return
	}
	rowsDroppedTotal.WithLabelValues(reason).Add(float64(n))
}

// RecordDetectorAborted increments the abort counter for the named detector.
func RecordDetectorAborted(detector string) {
	detectorAbortedTotal.WithLabelValues(detector).Inc()
}

// RecordAnalysis observes the duration and flagged-account count of one run.
func RecordAnalysis(durationSeconds float64, flagged int) {
	analyzeDuration.Observe(durationSeconds)
	accountsFlagged.Set(float64(flagged))
}

// Handler returns the HTTP handler that serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
