// Package metrics provides basic monitoring and metrics collection for
// vesta. It supports counters, gauges, and histograms with label
// support for tracking scan performance. Collection is in-process and
// advisory only; nothing in the scan engine depends on it.
package metrics

import (
	"sync"
	"time"
)

// MetricType represents the type of metric.
type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// Labels represents key-value pairs for metric labels.
type Labels map[string]string

// Metric represents a single metric with its metadata.
type Metric struct {
	Name      string
	Type      MetricType
	Value     float64
	Labels    Labels
	Timestamp time.Time
}

// Registry holds all metrics and provides collection functionality.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
	enabled bool
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]*Metric),
		enabled: true,
	}
}

// SetEnabled enables or disables metrics collection.
func (r *Registry) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// IsEnabled returns whether metrics collection is enabled.
func (r *Registry) IsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Counter increments a counter metric.
func (r *Registry) Counter(name string, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	if metric, exists := r.metrics[key]; exists {
		metric.Value++
		metric.Timestamp = time.Now()
	} else {
		r.metrics[key] = &Metric{
			Name:      name,
			Type:      TypeCounter,
			Value:     1,
			Labels:    labels,
			Timestamp: time.Now(),
		}
	}
}

// Gauge sets a gauge metric value.
func (r *Registry) Gauge(name string, value float64, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	r.metrics[key] = &Metric{
		Name:      name,
		Type:      TypeGauge,
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now(),
	}
}

// Histogram records a value in a histogram metric. Simple
// implementation tracking the last value; can be extended to proper
// buckets later.
func (r *Registry) Histogram(name string, value float64, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	if metric, exists := r.metrics[key]; exists {
		metric.Value = value
		metric.Timestamp = time.Now()
	} else {
		r.metrics[key] = &Metric{
			Name:      name,
			Type:      TypeHistogram,
			Value:     value,
			Labels:    labels,
			Timestamp: time.Now(),
		}
	}
}

// GetMetrics returns a snapshot of all current metrics.
func (r *Registry) GetMetrics() map[string]*Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*Metric)
	for key, metric := range r.metrics {
		result[key] = &Metric{
			Name:      metric.Name,
			Type:      metric.Type,
			Value:     metric.Value,
			Labels:    copyLabels(metric.Labels),
			Timestamp: metric.Timestamp,
		}
	}
	return result
}

// Reset clears all metrics.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = make(map[string]*Metric)
}

// makeKey creates a unique key for a metric based on name and labels.
func (r *Registry) makeKey(name string, labels Labels) string {
	if len(labels) == 0 {
		return name
	}

	key := name
	for k, v := range labels {
		key += ":" + k + "=" + v
	}
	return key
}

// copyLabels creates a copy of labels map.
func copyLabels(labels Labels) Labels {
	if labels == nil {
		return nil
	}
	result := make(Labels)
	for k, v := range labels {
		result[k] = v
	}
	return result
}

// Predefined metric names for scan operations.
const (
	MetricScanDuration = "scan_duration_seconds"
	MetricScanErrors   = "scan_errors_total"
	MetricProbesTotal  = "probes_total"
	MetricPortsOpen    = "ports_open_total"
)

// Common label keys.
const (
	LabelError = "error"
)

// ScanMetrics bundles the scan-level recording helpers around a
// registry. The scan engine only ever talks to this facade.
type ScanMetrics struct {
	registry MetricsRegistry
}

// NewScanMetrics creates scan metrics backed by the given registry.
func NewScanMetrics(registry MetricsRegistry) *ScanMetrics {
	return &ScanMetrics{registry: registry}
}

// RecordScanDuration records the wall-clock duration of a scan.
func (m *ScanMetrics) RecordScanDuration(duration time.Duration) {
	m.registry.Histogram(MetricScanDuration, duration.Seconds(), nil)
}

// IncrementScanErrors increments the scan error counter with a reason.
func (m *ScanMetrics) IncrementScanErrors(reason string) {
	m.registry.Counter(MetricScanErrors, Labels{LabelError: reason})
}

// IncrementProbes increments the completed probe counter.
func (m *ScanMetrics) IncrementProbes() {
	m.registry.Counter(MetricProbesTotal, nil)
}

// IncrementOpenPorts increments the open ports counter.
func (m *ScanMetrics) IncrementOpenPorts() {
	m.registry.Counter(MetricPortsOpen, nil)
}

// Registry returns the underlying registry.
func (m *ScanMetrics) Registry() MetricsRegistry {
	return m.registry
}

var (
	globalMetrics     *ScanMetrics
	globalMetricsOnce sync.Once
)

// GetGlobalMetrics returns the global scan metrics instance.
func GetGlobalMetrics() *ScanMetrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewScanMetrics(NewRegistry())
	})
	return globalMetrics
}
