package metrics

// MetricsRegistry is the recording surface ScanMetrics writes through.
// The scan engine only ever records via the facade, so a test can hand
// it a fake registry and observe exactly what a scan emitted.
type MetricsRegistry interface {
	// SetEnabled turns collection on or off.
	SetEnabled(enabled bool)

	// IsEnabled reports whether collection is on.
	IsEnabled() bool

	// Counter increments the named counter.
	Counter(name string, labels Labels)

	// Gauge sets the named gauge.
	Gauge(name string, value float64, labels Labels)

	// Histogram records a value in the named histogram.
	Histogram(name string, value float64, labels Labels)

	// GetMetrics returns a snapshot of all current metrics.
	GetMetrics() map[string]*Metric

	// Reset clears all recorded metrics.
	Reset()
}

var _ MetricsRegistry = (*Registry)(nil)
