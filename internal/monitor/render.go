package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/solprobe/internal/probe"
)

// Renderer turns a ViewModel into drawable output.
type Renderer interface {
	Render(vm ViewModel) string
}

// defaultWidth is used before the first WindowSizeMsg arrives.
const defaultWidth = 80

// StyledRenderer draws the lipgloss dashboard.
type StyledRenderer struct{}

// Render draws header, tab bar and the active tab body.
func (r StyledRenderer) Render(vm ViewModel) string {
	width := vm.Width
	if width <= 0 {
		width = defaultWidth
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.header(vm.Header),
		r.tabBar(vm.Tabs, width),
		r.body(vm.Payload, width),
	)
}

func (r StyledRenderer) header(h Header) string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("solprobe")

	parts := []string{}
	if h.URL != "" {
		parts = append(parts, h.URL)
	}
	if h.LastUpdate.IsZero() {
		parts = append(parts, "waiting for first refresh")
	} else {
		parts = append(parts, "last update "+formatAge(h.Age))
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	line := title + stats
	if h.Refreshing {
		frame := RefreshSpinnerFrames[h.Frame%len(RefreshSpinnerFrames)]
		line += RefreshingStyle.Render("  " + frame + " refreshing")
	}
	return HeaderStyle.Render(line)
}

func (r StyledRenderer) tabBar(tabs []TabItem, width int) string {
	names := make([]string, len(tabs))
	for i, t := range tabs {
		if t.Active {
			names[i] = TabActiveStyle.Render(t.Name)
		} else {
			names[i] = TabStyle.Render(t.Name)
		}
	}
	divider := TabDividerStyle.Render(" | ")
	return TabBarStyle.Width(width - 2).Render(strings.Join(names, divider))
}

func (r StyledRenderer) body(p Payload, width int) string {
	var cards []string

	switch p := p.(type) {
	case NodeHealthPayload:
		h := p.Health
		cards = append(cards, card("Node Status", StatusText(h.Responsive), width))
		if h.Slot != nil {
			cards = append(cards, card("Current Slot", ValueStyle.Render(humanize.Comma(int64(*h.Slot))), width))
		}
		if h.Version != nil {
			cards = append(cards, card("Version", ValueStyle.Render(*h.Version), width))
		}
		if h.Epoch != nil {
			cards = append(cards, card("Current Epoch", ValueStyle.Render(humanize.Comma(int64(*h.Epoch))), width))
		}
		if h.TotalNodes != nil {
			cards = append(cards, card("Total Nodes", ValueStyle.Render(humanize.Comma(int64(*h.TotalNodes))), width))
		}

	case PerformancePayload:
		perf := p.Performance
		cards = append(cards, card("TPS "+formatTPS(perf.TPS), gauge(perf.TPS, ColorGauge, width), width))
		if perf.AvgBlockTime != nil {
			cards = append(cards, card("Avg Block Time", ValueStyle.Render(formatSeconds(*perf.AvgBlockTime)), width))
		}
		if perf.ConfirmationTime != nil {
			cards = append(cards, card("Confirmation Time", ValueStyle.Render(formatSeconds(perf.ConfirmationTime.Seconds())), width))
		} else if perf.ConfirmationTimeout {
			cards = append(cards, card("Confirmation Time", FlagProblemStyle.Render("no confirmation"), width))
		}

	case TroubleshootPayload:
		t := p.Troubleshoot
		if t.DelinquentValidators != nil {
			n := *t.DelinquentValidators
			cards = append(cards, card("Delinquent Validators "+humanize.Comma(int64(n)), gauge(float64(n), ColorCritical, width), width))
		}
		if t.EmptyBlocks != nil {
			cards = append(cards, card("Empty Blocks", ValueStyle.Render(humanize.Comma(int64(*t.EmptyBlocks))), width))
		}
		if t.LargeAccounts != nil {
			cards = append(cards, card("Large Accounts", ValueStyle.Render(humanize.Comma(int64(*t.LargeAccounts))), width))
		}
		cards = append(cards, card("Diagnostics", diagnostics(t), width))

		var recs []string
		for _, rec := range p.Recommendations {
			recs = append(recs, LabelStyle.Render("• "+rec))
		}
		cards = append(cards, card("Recommendations", strings.Join(recs, "\n"), width))

	case MonitorPayload:
		cards = append(cards, card("Node Status", StatusText(p.Responsive), width))
		cards = append(cards, card("TPS "+formatTPS(p.TPS), gauge(p.TPS, ColorGauge, width), width))
		if p.Slot != nil {
			cards = append(cards, card("Current Slot", ValueStyle.Render(humanize.Comma(int64(*p.Slot))), width))
		}
		if p.AvgBlockTime != nil {
			cards = append(cards, card("Avg Block Time", ValueStyle.Render(formatSeconds(*p.AvgBlockTime)), width))
		}
		if p.DelinquentValidators != nil {
			cards = append(cards, card("Delinquent Validators", ValueStyle.Render(humanize.Comma(int64(*p.DelinquentValidators))), width))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func diagnostics(t probe.Troubleshoot) string {
	conn := "OK"
	if !t.ConnectionOK {
		conn = "Failed"
	}
	lines := []string{
		LabelStyle.Render("Connection Status  ") + FlagText(conn, !t.ConnectionOK),
		LabelStyle.Render("Version Mismatch   ") + FlagText(yesNo(t.VersionMismatch), t.VersionMismatch),
		LabelStyle.Render("High Latency       ") + FlagText(yesNo(t.HighLatency), t.HighLatency),
		LabelStyle.Render("Network Congestion ") + FlagText(yesNo(t.NetworkCongestion), t.NetworkCongestion),
	}
	return strings.Join(lines, "\n")
}

// card renders a bordered box with a title line.
func card(title, content string, width int) string {
	return CardStyle.Width(width - 2).Render(CardTitleStyle.Render(title) + "\n" + content)
}

// gauge renders value as a 0-100 percentage bar. Values above 100 fill the
// bar; they are not rescaled.
func gauge(value float64, color lipgloss.Color, width int) string {
	barWidth := width - 4
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithColorProfile(lipgloss.ColorProfile()),
	)
	return bar.ViewAs(value / 100)
}

func formatTPS(tps float64) string {
	return humanize.CommafWithDigits(tps, 2)
}

func formatSeconds(secs float64) string {
	return fmt.Sprintf("%.3fs", secs)
}

func formatAge(d time.Duration) string {
	secs := int(d.Seconds())
	switch secs {
	case 0:
		return "just now"
	case 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
