package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/rileyhilliard/solprobe/internal/monitor"
	"github.com/rileyhilliard/solprobe/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithProgress_PassesThrough(t *testing.T) {
	inner := &fakeReportEvaluator{snap: healthySnapshot()}
	var status bytes.Buffer
	eval := withProgress(inner, &status, "http://localhost:8899")

	ctx := context.Background()
	assert.Equal(t, inner.snap.Health, eval.NodeHealth(ctx))
	assert.Equal(t, inner.snap.Performance, eval.NetworkPerformance(ctx))
	assert.Equal(t, inner.snap.Troubleshoot, eval.Troubleshoot(ctx))
	assert.Equal(t, inner.snap, eval.Evaluate(ctx))
	assert.Equal(t, []string{"NodeHealth", "NetworkPerformance", "Troubleshoot", "Evaluate"}, inner.calls)

	assert.Contains(t, status.String(), ui.SymbolSuccess+" Querying http://localhost:8899")
}

func TestWithProgress_ReportStaysClean(t *testing.T) {
	inner := &fakeReportEvaluator{snap: healthySnapshot()}
	var status, report bytes.Buffer

	err := runReport(context.Background(), &report, withProgress(inner, &status, "http://localhost:8899"),
		DashboardOptions{Tab: monitor.TabNodeHealth, Format: FormatText})
	require.NoError(t, err)

	assert.NotContains(t, report.String(), "Querying")
	assert.Contains(t, report.String(), "Node Health:\n")
}
