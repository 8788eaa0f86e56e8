package cli

import (
	"context"
	"io"

	"github.com/rileyhilliard/solprobe/internal/probe"
	"github.com/rileyhilliard/solprobe/internal/ui"
)

// progressEvaluator shows a spinner on out while each query runs.
type progressEvaluator struct {
	next  ReportEvaluator
	out   io.Writer
	label string
}

func withProgress(next ReportEvaluator, out io.Writer, url string) ReportEvaluator {
	return progressEvaluator{next: next, out: out, label: "Querying " + url}
}

func (p progressEvaluator) spin(fn func()) {
	s := ui.NewSpinner(p.label, p.out)
	s.Start()
	fn()
	s.Success()
}

func (p progressEvaluator) Evaluate(ctx context.Context) (snap probe.Snapshot) {
	p.spin(func() { snap = p.next.Evaluate(ctx) })
	return snap
}

func (p progressEvaluator) NodeHealth(ctx context.Context) (h probe.NodeHealth) {
	p.spin(func() { h = p.next.NodeHealth(ctx) })
	return h
}

func (p progressEvaluator) NetworkPerformance(ctx context.Context) (perf probe.NetworkPerformance) {
	p.spin(func() { perf = p.next.NetworkPerformance(ctx) })
	return perf
}

func (p progressEvaluator) Troubleshoot(ctx context.Context) (t probe.Troubleshoot) {
	p.spin(func() { t = p.next.Troubleshoot(ctx) })
	return t
}
