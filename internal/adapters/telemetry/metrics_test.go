package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Report(t *testing.T) {
	m := NewMetrics()
	now := time.Now()

	m.Report(domain.Event{Kind: domain.EventStarted, Time: now, Identifier: "op"})
	for pass := 0; pass < 2; pass++ {
		m.Report(domain.Event{Kind: domain.EventProgress, Identifier: "op", Category: "Plugin", Index: 1, Total: 2, Unit: "sleep"})
		m.Report(domain.Event{Kind: domain.EventProgress, Identifier: "op", Category: "Plugin", Index: 2, Total: 2, Unit: "shell"})
	}
	m.Report(domain.Event{Kind: domain.EventFailure, Identifier: "op", Category: "Plugin", Index: 2, Total: 2, Unit: "shell"})
	m.Report(domain.Event{Kind: domain.EventNonConformant, Identifier: "op", Unit: "dummy", Capability: "Close"})
	m.Report(domain.Event{Kind: domain.EventEnded, Time: now.Add(time.Second), Identifier: "op"})

	assert.InDelta(t, 2, testutil.ToFloat64(m.passes.WithLabelValues("op")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.invocations.WithLabelValues("Plugin", "shell")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failures.WithLabelValues("Plugin", "shell")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.nonconformant.WithLabelValues("Close")), 0)

	count, err := testutil.GatherAndCount(m.Registry(), "ape_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_EndedWithoutStartIsIgnored(t *testing.T) {
	m := NewMetrics()
	m.Report(domain.Event{Kind: domain.EventEnded, Identifier: "orphan"})

	count, err := testutil.GatherAndCount(m.Registry(), "ape_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
