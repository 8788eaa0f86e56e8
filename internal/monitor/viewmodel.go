package monitor

import (
	"time"

	"github.com/rileyhilliard/solprobe/internal/probe"
)

// Recommendations are the fixed hints shown on the Troubleshoot tab.
var Recommendations = []string{
	"Investigate delinquent validators if count is high",
	"Check for network congestion if many empty blocks",
	"Optimize large accounts to improve performance",
}

// TabItem is one entry of the tab bar.
type TabItem struct {
	Name   string
	Active bool
}

// Header describes the status line above the tab bar.
type Header struct {
	URL        string
	LastUpdate time.Time // zero until the first refresh lands
	Age        time.Duration
	Refreshing bool
	Frame      int // animation frame while refreshing
}

// ViewModel is everything a Renderer needs to draw one frame.
// Exactly one payload matching Active is set.
type ViewModel struct {
	Header  Header
	Tabs    []TabItem
	Active  Tab
	Payload Payload
	Width   int
	Height  int
}

// Payload is the body of the active tab.
type Payload interface {
	Tab() Tab
}

// NodeHealthPayload is the Node Health tab body.
type NodeHealthPayload struct {
	Health probe.NodeHealth
}

// PerformancePayload is the Network Performance tab body.
type PerformancePayload struct {
	Performance probe.NetworkPerformance
}

// TroubleshootPayload is the Troubleshoot tab body.
type TroubleshootPayload struct {
	Troubleshoot    probe.Troubleshoot
	Recommendations []string
}

// MonitorPayload is the condensed cross-section shown on the Monitor tab.
type MonitorPayload struct {
	Responsive           bool
	TPS                  float64
	Slot                 *uint64
	AvgBlockTime         *float64
	DelinquentValidators *uint64
}

func (NodeHealthPayload) Tab() Tab   { return TabNodeHealth }
func (PerformancePayload) Tab() Tab  { return TabNetworkPerformance }
func (TroubleshootPayload) Tab() Tab { return TabTroubleshoot }
func (MonitorPayload) Tab() Tab      { return TabMonitor }

// BuildViewModel derives a ViewModel from state. It never modifies state.
func BuildViewModel(s State, h Header) ViewModel {
	tabs := make([]TabItem, TabCount)
	for i, name := range TabNames {
		tabs[i] = TabItem{Name: name, Active: Tab(i) == s.Tab}
	}

	return ViewModel{
		Header:  h,
		Tabs:    tabs,
		Active:  s.Tab,
		Payload: payloadFor(s),
	}
}

func payloadFor(s State) Payload {
	switch s.Tab {
	case TabNetworkPerformance:
		return PerformancePayload{Performance: s.Performance}
	case TabTroubleshoot:
		return TroubleshootPayload{Troubleshoot: s.Troubleshoot, Recommendations: Recommendations}
	case TabMonitor:
		return MonitorPayload{
			Responsive:           s.Health.Responsive,
			TPS:                  s.Performance.TPS,
			Slot:                 s.Health.Slot,
			AvgBlockTime:         s.Performance.AvgBlockTime,
			DelinquentValidators: s.Troubleshoot.DelinquentValidators,
		}
	default:
		return NodeHealthPayload{Health: s.Health}
	}
}
