package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/logger"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd is the base command. Running it without a subcommand shows help.
var rootCmd = &cobra.Command{
	Use:   "solprobe",
	Short: "Live health dashboard for Solana RPC nodes",
	Long: `solprobe polls a Solana-compatible node over JSON-RPC and shows its
health, throughput and anomaly signals in a terminal dashboard.

Pick a mode to start on its tab; every tab is reachable with left/right
once the dashboard is open.

Examples:
  solprobe monitor
  solprobe node-health --url http://localhost:8899
  solprobe troubleshoot --once --format json
  solprobe monitor --ssh validator-1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/solprobe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// applyGlobalFlags configures logging and color from the global flags.
func applyGlobalFlags() {
	log.SetFlags(0)

	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if verbose {
		_ = os.Setenv(logger.DebugEnv, "1")
	}
}

// Execute runs the root command and exits with the right status.
func Execute() {
	err := rootCmd.Execute()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on w (unless it only carries a status) and returns
// the process exit code.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}
	fmt.Fprintln(w, err)
	return 1
}
