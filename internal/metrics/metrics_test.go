package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCounter(t *testing.T) {
	r := NewRegistry()

	r.Counter("probes_total", nil)
	r.Counter("probes_total", nil)
	r.Counter("probes_total", nil)

	snapshot := r.GetMetrics()
	require.Contains(t, snapshot, "probes_total")
	assert.Equal(t, TypeCounter, snapshot["probes_total"].Type)
	assert.Equal(t, float64(3), snapshot["probes_total"].Value)
}

func TestRegistryCounterLabels(t *testing.T) {
	r := NewRegistry()

	r.Counter("scan_errors_total", Labels{"error": "config_invalid"})
	r.Counter("scan_errors_total", Labels{"error": "host_unresolvable"})
	r.Counter("scan_errors_total", Labels{"error": "config_invalid"})

	snapshot := r.GetMetrics()
	require.Len(t, snapshot, 2)
	assert.Equal(t, float64(2), snapshot["scan_errors_total:error=config_invalid"].Value)
	assert.Equal(t, float64(1), snapshot["scan_errors_total:error=host_unresolvable"].Value)
}

func TestRegistryGauge(t *testing.T) {
	r := NewRegistry()

	r.Gauge("workers_active", 10, nil)
	r.Gauge("workers_active", 4, nil)

	snapshot := r.GetMetrics()
	assert.Equal(t, float64(4), snapshot["workers_active"].Value)
	assert.Equal(t, TypeGauge, snapshot["workers_active"].Type)
}

func TestRegistryHistogram(t *testing.T) {
	r := NewRegistry()

	r.Histogram(MetricScanDuration, 1.5, nil)
	r.Histogram(MetricScanDuration, 2.5, nil)

	snapshot := r.GetMetrics()
	assert.Equal(t, float64(2.5), snapshot[MetricScanDuration].Value)
	assert.Equal(t, TypeHistogram, snapshot[MetricScanDuration].Type)
}

func TestRegistryDisabled(t *testing.T) {
	r := NewRegistry()
	r.SetEnabled(false)

	r.Counter("probes_total", nil)
	r.Gauge("workers_active", 1, nil)
	r.Histogram(MetricScanDuration, 1, nil)

	assert.Empty(t, r.GetMetrics())
	assert.False(t, r.IsEnabled())
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Counter("probes_total", nil)
	require.NotEmpty(t, r.GetMetrics())

	r.Reset()
	assert.Empty(t, r.GetMetrics())
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Counter("probes_total", nil)

	snapshot := r.GetMetrics()
	snapshot["probes_total"].Value = 99

	assert.Equal(t, float64(1), r.GetMetrics()["probes_total"].Value)
}

func TestScanMetricsRecording(t *testing.T) {
	m := NewScanMetrics(NewRegistry())

	m.IncrementProbes()
	m.IncrementProbes()
	m.IncrementOpenPorts()
	m.IncrementScanErrors("config_invalid")
	m.RecordScanDuration(1500 * time.Millisecond)

	snapshot := m.Registry().GetMetrics()
	assert.Equal(t, float64(2), snapshot[MetricProbesTotal].Value)
	assert.Equal(t, float64(1), snapshot[MetricPortsOpen].Value)
	assert.Equal(t, float64(1), snapshot[MetricScanErrors+":error=config_invalid"].Value)
	assert.Equal(t, 1.5, snapshot[MetricScanDuration].Value)
}

// fakeRegistry records what the facade emits without any real
// aggregation.
type fakeRegistry struct {
	counters   []string
	histograms map[string]float64
}

func (f *fakeRegistry) SetEnabled(bool) {}
func (f *fakeRegistry) IsEnabled() bool { return true }

func (f *fakeRegistry) Counter(name string, labels Labels) {
	if reason, ok := labels[LabelError]; ok {
		name += ":" + reason
	}
	f.counters = append(f.counters, name)
}

func (f *fakeRegistry) Gauge(string, float64, Labels) {}

func (f *fakeRegistry) Histogram(name string, value float64, _ Labels) {
	f.histograms[name] = value
}

func (f *fakeRegistry) GetMetrics() map[string]*Metric { return nil }
func (f *fakeRegistry) Reset()                         {}

func TestScanMetricsAcceptsAnyRegistry(t *testing.T) {
	fake := &fakeRegistry{histograms: make(map[string]float64)}
	m := NewScanMetrics(fake)

	m.IncrementProbes()
	m.IncrementOpenPorts()
	m.IncrementScanErrors("host_unresolvable")
	m.RecordScanDuration(2 * time.Second)

	assert.Contains(t, fake.counters, MetricProbesTotal)
	assert.Contains(t, fake.counters, MetricPortsOpen)
	assert.Contains(t, fake.counters, MetricScanErrors+":host_unresolvable")
	assert.Equal(t, 2.0, fake.histograms[MetricScanDuration])
}

func TestGetGlobalMetricsSingleton(t *testing.T) {
	first := GetGlobalMetrics()
	require.NotNil(t, first)
	assert.Same(t, first, GetGlobalMetrics())
}
