package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegistry_Isolated(t *testing.T) {
	// Two registries must not collide
	first := NewMetricsRegistry(prometheus.NewRegistry())
	second := NewMetricsRegistry(prometheus.NewRegistry())

	first.GovernanceOpsTotal.WithLabelValues("fund", "OK").Inc()

	if got := testutil.ToFloat64(first.GovernanceOpsTotal.WithLabelValues("fund", "OK")); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(second.GovernanceOpsTotal.WithLabelValues("fund", "OK")); got != 0 {
		t.Errorf("Expected 0 on second registry, got %v", got)
	}
}
