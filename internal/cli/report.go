package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/monitor"
	"github.com/rileyhilliard/solprobe/internal/probe"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportEvaluator runs the queries behind each tab. *probe.Evaluator satisfies it.
type ReportEvaluator interface {
	Evaluate(ctx context.Context) probe.Snapshot
	NodeHealth(ctx context.Context) probe.NodeHealth
	NetworkPerformance(ctx context.Context) probe.NetworkPerformance
	Troubleshoot(ctx context.Context) probe.Troubleshoot
}

var _ ReportEvaluator = (*probe.Evaluator)(nil)

// troubleshootReport adds the failed checks and fixed hints to the raw
// troubleshoot results for structured output.
type troubleshootReport struct {
	probe.Troubleshoot `yaml:",inline"`
	Problems           []string `json:"problems" yaml:"problems"`
	Recommendations    []string `json:"recommendations" yaml:"recommendations"`
}

// runReport evaluates only what the tab needs and writes it to w.
// A troubleshoot report with failed checks returns an ExitError(1) after
// printing.
func runReport(ctx context.Context, w io.Writer, eval ReportEvaluator, opts DashboardOptions) error {
	snap := evaluateTab(ctx, eval, opts.Tab)

	var err error
	switch opts.Format {
	case FormatJSON:
		err = writeJSON(w, reportData(opts.Tab, snap))
	case FormatYAML:
		err = writeYAML(w, reportData(opts.Tab, snap))
	default:
		state := monitor.NewState(opts.Tab)
		state.Apply(snap)
		vm := monitor.BuildViewModel(state, monitor.Header{URL: opts.URL, LastUpdate: snap.EvaluatedAt})
		_, err = io.WriteString(w, monitor.PlainRenderer{}.Render(vm))
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal, "Failed to write report", "")
	}

	if opts.Tab == monitor.TabTroubleshoot && len(snap.Troubleshoot.Problems()) > 0 {
		return errors.NewExitError(1)
	}
	return nil
}

// evaluateTab skips the slow confirmation probe for tabs that don't show it.
func evaluateTab(ctx context.Context, eval ReportEvaluator, tab monitor.Tab) probe.Snapshot {
	var snap probe.Snapshot
	switch tab {
	case monitor.TabNodeHealth:
		snap.Health = eval.NodeHealth(ctx)
	case monitor.TabNetworkPerformance:
		snap.Performance = eval.NetworkPerformance(ctx)
	case monitor.TabTroubleshoot:
		snap.Troubleshoot = eval.Troubleshoot(ctx)
	default:
		return eval.Evaluate(ctx)
	}
	snap.EvaluatedAt = time.Now()
	return snap
}

func reportData(tab monitor.Tab, snap probe.Snapshot) interface{} {
	switch tab {
	case monitor.TabNodeHealth:
		return snap.Health
	case monitor.TabNetworkPerformance:
		return snap.Performance
	case monitor.TabTroubleshoot:
		problems := snap.Troubleshoot.Problems()
		if problems == nil {
			problems = []string{}
		}
		return troubleshootReport{
			Troubleshoot:    snap.Troubleshoot,
			Problems:        problems,
			Recommendations: monitor.Recommendations,
		}
	default:
		return snap
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
