// Package cli implements the solprobe command-line interface.
//
// Each dashboard mode is a Cobra command that starts the TUI on its own
// tab. The commands share one flag set and one workflow:
//
//  1. Load config (creating the default file on first run) and validate it
//  2. Resolve the RPC URL and refresh interval from flags, prompts or config
//  3. Build the RPC client, routed through an SSH tunnel when --ssh is set
//  4. Either print a one-shot report (--once) or run the dashboard
//
// # Command Structure
//
//	solprobe node-health          - Node Health tab
//	solprobe network-performance  - Network Performance tab
//	solprobe troubleshoot         - Troubleshoot tab
//	solprobe monitor              - Monitor tab
//	solprobe version              - Build information
//	solprobe completion <shell>   - Shell completion script
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) live on the root command.
// Dashboard flags (--url, --interval, --ssh, --no-prompt, --once, --format)
// are added to every mode command by addDashboardFlags.
//
// # Logging
//
// While the dashboard runs, log output goes to solprobe.log next to the
// config file so it never lands on the alternate screen.
package cli
