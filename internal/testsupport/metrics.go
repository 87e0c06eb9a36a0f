package testsupport

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MetricValue returns the current value of a counter or gauge.
func MetricValue(t testing.TB, m prometheus.Metric) float64 {
	t.Helper()

	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("read metric: %v", err)
	}
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	default:
		t.Fatalf("metric %s is neither a counter nor a gauge", m.Desc())
		return 0
	}
}
