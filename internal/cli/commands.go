package cli

import (
	"os"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/monitor"
	"github.com/spf13/cobra"
)

// dashboardFlags is shared by the mode commands; only one runs per process.
var dashboardFlags DashboardFlags

const keyboardHelp = `Keyboard shortcuts:
  left/h      Previous tab
  right/l     Next tab
  r           Refresh now
  ?           Show help
  q / Ctrl+C  Quit`

// nodeHealthCmd opens the dashboard on the Node Health tab
var nodeHealthCmd = &cobra.Command{
	Use:   "node-health",
	Short: "Check node responsiveness, version, slot and epoch",
	Long: `Open the dashboard on the Node Health tab.

Shows whether the node answers getHealth, its reported version, current
slot and epoch, and how many nodes it sees in the cluster.

` + keyboardHelp + `

Examples:
  solprobe node-health
  solprobe node-health --url http://localhost:8899
  solprobe node-health --once`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, monitor.TabNodeHealth, dashboardFlags)
	},
}

// networkPerformanceCmd opens the dashboard on the Network Performance tab
var networkPerformanceCmd = &cobra.Command{
	Use:   "network-performance",
	Short: "Measure TPS, block time and confirmation time",
	Long: `Open the dashboard on the Network Performance tab.

Shows transactions per second and average block time from the latest
performance sample, and how long the node takes to advance a slot.

` + keyboardHelp + `

Examples:
  solprobe network-performance
  solprobe network-performance --interval 10s
  solprobe network-performance --once --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, monitor.TabNetworkPerformance, dashboardFlags)
	},
}

// troubleshootCmd opens the dashboard on the Troubleshoot tab
var troubleshootCmd = &cobra.Command{
	Use:   "troubleshoot",
	Short: "Flag connection, version, latency and congestion problems",
	Long: `Open the dashboard on the Troubleshoot tab.

Runs the diagnostic checks (connection, version baseline, latency,
congestion) and counts delinquent validators, empty blocks and large
accounts.

With --once, exits with status 1 when any check fails.

` + keyboardHelp + `

Examples:
  solprobe troubleshoot
  solprobe troubleshoot --once --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, monitor.TabTroubleshoot, dashboardFlags)
	},
}

// monitorCmd opens the dashboard on the Monitor tab
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Condensed live view of node status and throughput",
	Long: `Open the dashboard on the Monitor tab.

Shows node status, TPS, current slot, average block time and delinquent
validators on one screen, refreshed on the configured interval.

` + keyboardHelp + `

Examples:
  solprobe monitor
  solprobe monitor --interval 2s
  solprobe monitor --ssh validator-1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, monitor.TabMonitor, dashboardFlags)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for solprobe.

Examples:
  # Bash
  solprobe completion bash > /etc/bash_completion.d/solprobe

  # Zsh
  solprobe completion zsh > "${fpath[1]}/_solprobe"

  # Fish
  solprobe completion fish > ~/.config/fish/completions/solprobe.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	for _, cmd := range []*cobra.Command{nodeHealthCmd, networkPerformanceCmd, troubleshootCmd, monitorCmd} {
		AddDashboardFlags(cmd, &dashboardFlags)
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(completionCmd)
}
