package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockComponent simulates a component that registers its own metrics
type mockComponent struct {
	name    string
	metrics struct {
		recordsMerged prometheus.Counter
		cacheSize     prometheus.Gauge
	}
}

func newMockComponent(name string) *mockComponent {
	return &mockComponent{name: name}
}

// RegisterMetrics registers domain-specific metrics for the mock component
func (m *mockComponent) RegisterMetrics(registrar MetricsRegistrar) error {
	m.metrics.recordsMerged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "firewatch",
		Subsystem: "mock_component",
		Name:      "records_merged_total",
		Help:      "Total number of records merged",
	})

	err := registrar.RegisterCounter(m.name, "records_merged_total", m.metrics.recordsMerged)
	if err != nil {
		return err
	}

	m.metrics.cacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "firewatch",
		Subsystem: "mock_component",
		Name:      "cache_size",
		Help:      "Current number of cached records",
	})

	return registrar.RegisterGauge(m.name, "cache_size", m.metrics.cacheSize)
}

// Merge simulates merging records and updates metrics
func (m *mockComponent) Merge(records int, cacheSize int) {
	m.metrics.recordsMerged.Add(float64(records))
	m.metrics.cacheSize.Set(float64(cacheSize))
}

func TestMetricsIntegration_ComponentRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	mock := newMockComponent("test-component")

	err := mock.RegisterMetrics(registry)
	require.NoError(t, err)

	mock.Merge(10, 5)

	found := gatheredNames(t, registry)

	assert.True(t, found["firewatch_mock_component_records_merged_total"],
		"Custom records_merged metric should be registered")
	assert.True(t, found["firewatch_mock_component_cache_size"],
		"Custom cache_size metric should be registered")
}

func TestMetricsIntegration_NoDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	// Two components with the same name (this shouldn't happen in real usage)
	component1 := newMockComponent("duplicate-component")
	component2 := newMockComponent("duplicate-component")

	err := component1.RegisterMetrics(registry)
	require.NoError(t, err)

	err = component2.RegisterMetrics(registry)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMetricsIntegration_CoreAndComponentMetricsSeparate(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	mock := newMockComponent("separation-test")
	err := mock.RegisterMetrics(registry)
	require.NoError(t, err)

	core.RecordComponentStatus("separation-test", 2)
	core.RecordFrameReceived("telemetry")

	mock.Merge(5, 3)

	found := gatheredNames(t, registry)

	assert.True(t, found["firewatch_component_status"],
		"core component status metric should be present")
	assert.True(t, found["firewatch_stream_frames_received_total"],
		"core frames received metric should be present")

	assert.True(t, found["firewatch_mock_component_records_merged_total"],
		"Component-specific merge metric should be present")
	assert.True(t, found["firewatch_mock_component_cache_size"],
		"Component-specific cache size metric should be present")
}

func TestMetricsIntegration_MetricsUnregistration(t *testing.T) {
	registry := NewMetricsRegistry()

	mock := newMockComponent("unregister-test")

	err := mock.RegisterMetrics(registry)
	require.NoError(t, err)

	// Touch metrics to make them visible
	mock.Merge(1, 1)

	found := gatheredNames(t, registry)
	assert.True(t, found["firewatch_mock_component_records_merged_total"],
		"Metric should be present before unregistration")

	success := registry.Unregister("unregister-test", "records_merged_total")
	assert.True(t, success, "Unregistration should succeed")

	found = gatheredNames(t, registry)
	assert.False(t, found["firewatch_mock_component_records_merged_total"],
		"Metric should be absent after unregistration")
	assert.True(t, found["firewatch_mock_component_cache_size"],
		"Other component metrics should remain")
}

func TestMetricsIntegration_MultipleComponentsWithConflictingNames(t *testing.T) {
	registry := NewMetricsRegistry()

	// Components with different names still collide at the Prometheus level
	// because both register the same fully-qualified metric names.
	component1 := newMockComponent("telemetry-merger")
	component2 := newMockComponent("notification-merger")

	err := component1.RegisterMetrics(registry)
	require.NoError(t, err)

	err = component2.RegisterMetrics(registry)
	assert.Error(t, err, "Second component should fail due to Prometheus metric name conflict")
	assert.Contains(t, err.Error(), "prometheus conflict")
}
