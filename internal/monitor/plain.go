package monitor

import (
	"fmt"
	"strings"
)

// PlainRenderer draws the active tab as unstyled "Label: value" lines.
// Absent fields are left out. Used for one-shot reports and pipes.
type PlainRenderer struct{}

func (PlainRenderer) Render(vm ViewModel) string {
	var b strings.Builder

	switch p := vm.Payload.(type) {
	case NodeHealthPayload:
		h := p.Health
		b.WriteString("Node Health:\n")
		fmt.Fprintf(&b, "Is Responsive: %t\n", h.Responsive)
		if h.Slot != nil {
			fmt.Fprintf(&b, "Current Slot: %d\n", *h.Slot)
		}
		if h.Version != nil {
			fmt.Fprintf(&b, "Version: %s\n", *h.Version)
		}
		if h.Epoch != nil {
			fmt.Fprintf(&b, "Current Epoch: %d\n", *h.Epoch)
		}
		if h.TotalNodes != nil {
			fmt.Fprintf(&b, "Total Nodes: %d\n", *h.TotalNodes)
		}

	case PerformancePayload:
		perf := p.Performance
		b.WriteString("Network Performance:\n")
		fmt.Fprintf(&b, "TPS: %.2f\n", perf.TPS)
		if perf.AvgBlockTime != nil {
			fmt.Fprintf(&b, "Average Block Time: %s\n", formatSeconds(*perf.AvgBlockTime))
		}
		if perf.ConfirmationTime != nil {
			fmt.Fprintf(&b, "Estimated Confirmation Time: %s\n", formatSeconds(perf.ConfirmationTime.Seconds()))
		} else if perf.ConfirmationTimeout {
			b.WriteString("Estimated Confirmation Time: no confirmation\n")
		}

	case TroubleshootPayload:
		t := p.Troubleshoot
		conn := "OK"
		if !t.ConnectionOK {
			conn = "Failed"
		}
		b.WriteString("Troubleshoot Results:\n")
		fmt.Fprintf(&b, "Connection Status: %s\n", conn)
		fmt.Fprintf(&b, "Version Mismatch: %s\n", yesNo(t.VersionMismatch))
		fmt.Fprintf(&b, "High Latency: %s\n", yesNo(t.HighLatency))
		fmt.Fprintf(&b, "Network Congestion: %s\n", yesNo(t.NetworkCongestion))
		if t.DelinquentValidators != nil {
			fmt.Fprintf(&b, "Delinquent Validators: %d\n", *t.DelinquentValidators)
		}
		if t.EmptyBlocks != nil {
			fmt.Fprintf(&b, "Empty Blocks: %d\n", *t.EmptyBlocks)
		}
		if t.LargeAccounts != nil {
			fmt.Fprintf(&b, "Large Accounts: %d\n", *t.LargeAccounts)
		}
		if len(p.Recommendations) > 0 {
			b.WriteString("\nRecommendations:\n")
			for _, rec := range p.Recommendations {
				fmt.Fprintf(&b, "- %s\n", rec)
			}
		}

	case MonitorPayload:
		status := "Offline"
		if p.Responsive {
			status = "Online"
		}
		b.WriteString("Monitor:\n")
		fmt.Fprintf(&b, "Node Status: %s\n", status)
		fmt.Fprintf(&b, "TPS: %.2f\n", p.TPS)
		if p.Slot != nil {
			fmt.Fprintf(&b, "Current Slot: %d\n", *p.Slot)
		}
		if p.AvgBlockTime != nil {
			fmt.Fprintf(&b, "Average Block Time: %s\n", formatSeconds(*p.AvgBlockTime))
		}
		if p.DelinquentValidators != nil {
			fmt.Fprintf(&b, "Delinquent Validators: %d\n", *p.DelinquentValidators)
		}
	}

	return b.String()
}
