package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/monitor"
	"github.com/rileyhilliard/solprobe/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func u64(v uint64) *uint64   { return &v }
func str(v string) *string   { return &v }
func f64(v float64) *float64 { return &v }

// fakeReportEvaluator returns canned sections and records which ran.
type fakeReportEvaluator struct {
	snap  probe.Snapshot
	calls []string
}

func (f *fakeReportEvaluator) Evaluate(ctx context.Context) probe.Snapshot {
	f.calls = append(f.calls, "Evaluate")
	return f.snap
}

func (f *fakeReportEvaluator) NodeHealth(ctx context.Context) probe.NodeHealth {
	f.calls = append(f.calls, "NodeHealth")
	return f.snap.Health
}

func (f *fakeReportEvaluator) NetworkPerformance(ctx context.Context) probe.NetworkPerformance {
	f.calls = append(f.calls, "NetworkPerformance")
	return f.snap.Performance
}

func (f *fakeReportEvaluator) Troubleshoot(ctx context.Context) probe.Troubleshoot {
	f.calls = append(f.calls, "Troubleshoot")
	return f.snap.Troubleshoot
}

func healthySnapshot() probe.Snapshot {
	confirm := 400 * time.Millisecond
	return probe.Snapshot{
		Health: probe.NodeHealth{
			Responsive: true,
			Version:    str("1.14.0"),
			Slot:       u64(123456),
			Epoch:      u64(42),
			TotalNodes: u64(1800),
		},
		Performance: probe.NetworkPerformance{
			TPS:              1500,
			AvgBlockTime:     f64(0.5),
			ConfirmationTime: &confirm,
		},
		Troubleshoot: probe.Troubleshoot{
			ConnectionOK:         true,
			DelinquentValidators: u64(3),
			EmptyBlocks:          u64(7),
			LargeAccounts:        u64(20),
		},
		EvaluatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRunReport_TextNodeHealth(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabNodeHealth, Format: FormatText})
	require.NoError(t, err)

	assert.Equal(t, "Node Health:\n"+
		"Is Responsive: true\n"+
		"Current Slot: 123456\n"+
		"Version: 1.14.0\n"+
		"Current Epoch: 42\n"+
		"Total Nodes: 1800\n", buf.String())
	assert.Equal(t, []string{"NodeHealth"}, eval.calls, "only the tab's queries run")
}

func TestRunReport_TextPerformance(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabNetworkPerformance, Format: FormatText})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "TPS: 1500.00\n")
	assert.Contains(t, buf.String(), "Average Block Time: 0.500s\n")
	assert.Contains(t, buf.String(), "Estimated Confirmation Time: 0.400s\n")
	assert.Equal(t, []string{"NetworkPerformance"}, eval.calls)
}

func TestRunReport_MonitorEvaluatesEverything(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabMonitor, Format: FormatText})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Node Status: Online\n")
	assert.Contains(t, buf.String(), "Delinquent Validators: 3\n")
	assert.Equal(t, []string{"Evaluate"}, eval.calls)
}

func TestRunReport_TroubleshootHealthyExitsZero(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabTroubleshoot, Format: FormatText})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Connection Status: OK\n")
	assert.Contains(t, buf.String(), "\nRecommendations:\n")
}

func TestRunReport_TroubleshootProblemsExitOne(t *testing.T) {
	snap := healthySnapshot()
	snap.Troubleshoot.NetworkCongestion = true
	eval := &fakeReportEvaluator{snap: snap}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabTroubleshoot, Format: FormatText})
	require.Error(t, err)

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Network Congestion: Yes\n", "report is printed before exiting")
}

func TestRunReport_JSONTroubleshoot(t *testing.T) {
	snap := healthySnapshot()
	snap.Troubleshoot.VersionMismatch = true
	eval := &fakeReportEvaluator{snap: snap}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabTroubleshoot, Format: FormatJSON})
	require.Error(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["connection_ok"])
	assert.Equal(t, true, got["version_mismatch"])
	assert.Equal(t, float64(3), got["delinquent_validators"])
	assert.Equal(t, []interface{}{"version mismatch"}, got["problems"])
	assert.Len(t, got["recommendations"], 3)
}

func TestRunReport_JSONOmitsAbsentFields(t *testing.T) {
	eval := &fakeReportEvaluator{snap: probe.Snapshot{}}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabNodeHealth, Format: FormatJSON})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]interface{}{"responsive": false}, got)
}

func TestRunReport_YAMLNodeHealth(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabNodeHealth, Format: FormatYAML})
	require.NoError(t, err)

	var got probe.NodeHealth
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, healthySnapshot().Health, got)
	assert.Contains(t, buf.String(), "total_nodes: 1800")
}

func TestRunReport_YAMLTroubleshootInlinesFlags(t *testing.T) {
	eval := &fakeReportEvaluator{snap: healthySnapshot()}
	var buf bytes.Buffer

	err := runReport(context.Background(), &buf, eval, DashboardOptions{Tab: monitor.TabTroubleshoot, Format: FormatYAML})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "connection_ok: true\n")
	assert.Contains(t, buf.String(), "problems: []\n")
	assert.Contains(t, buf.String(), "- Investigate delinquent validators if count is high\n")
}
