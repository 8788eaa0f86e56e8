package monitor

import (
	"github.com/rileyhilliard/solprobe/internal/probe"
)

// Tab identifies one of the four dashboard views.
type Tab int

const (
	TabNodeHealth Tab = iota
	TabNetworkPerformance
	TabTroubleshoot
	TabMonitor
)

// TabCount is the number of tabs.
const TabCount = 4

// TabNames are the tab bar labels, indexed by Tab.
var TabNames = [TabCount]string{
	"Node Health",
	"Network Performance",
	"Troubleshoot",
	"Monitor",
}

// String returns the tab bar label.
func (t Tab) String() string {
	if t < 0 || int(t) >= TabCount {
		return "unknown"
	}
	return TabNames[t]
}

// Prev moves one tab left, stopping at the first tab.
func (t Tab) Prev() Tab {
	if t <= TabNodeHealth {
		return TabNodeHealth
	}
	return t - 1
}

// Next moves one tab right, stopping at the last tab.
func (t Tab) Next() Tab {
	if t >= TabMonitor {
		return TabMonitor
	}
	return t + 1
}

// State is everything the dashboard knows about the node.
// It is created once with empty snapshots and overwritten on each refresh.
type State struct {
	Health       probe.NodeHealth
	Performance  probe.NetworkPerformance
	Troubleshoot probe.Troubleshoot
	Tab          Tab
}

// NewState returns empty state on the given tab.
func NewState(tab Tab) State {
	return State{Tab: tab.clamp()}
}

// Apply replaces every snapshot field with the result of an evaluation.
// Nothing from the previous snapshot survives; a field that failed to
// evaluate becomes absent. The selected tab is kept.
func (s *State) Apply(snap probe.Snapshot) {
	s.Health = snap.Health
	s.Performance = snap.Performance
	s.Troubleshoot = snap.Troubleshoot
}

func (t Tab) clamp() Tab {
	switch {
	case t < TabNodeHealth:
		return TabNodeHealth
	case t > TabMonitor:
		return TabMonitor
	default:
		return t
	}
}
