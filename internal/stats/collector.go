// Package stats provides a unified interface for collecting metrics about a
// book build run, with logger-backed and Prometheus-backed implementations.
package stats

// Metric names used throughout the build pipeline.
const (
	MetricGamesParsed    = "pgnbook_games_parsed_total"
	MetricGamesFailed    = "pgnbook_games_failed_total"
	MetricPliesReplayed  = "pgnbook_plies_replayed_total"
	MetricSanUnresolved  = "pgnbook_san_unresolved_total"
	MetricEntriesRaw     = "pgnbook_entries_raw_total"
	MetricEntriesWritten = "pgnbook_entries_written_total"
	MetricBuildDuration  = "pgnbook_build_duration_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
