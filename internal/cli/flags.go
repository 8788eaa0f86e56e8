package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/solprobe/internal/config"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/pkg/sshutil"
	"github.com/spf13/cobra"
)

// Report formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DashboardFlags holds the flags shared by every dashboard mode command.
type DashboardFlags struct {
	URL      string
	Interval string
	SSH      string
	NoPrompt bool
	Once     bool
	Format   string
}

// AddDashboardFlags registers --url, --interval, --ssh, --no-prompt, --once
// and --format on a command.
func AddDashboardFlags(cmd *cobra.Command, flags *DashboardFlags) {
	cmd.Flags().StringVar(&flags.URL, "url", "", "RPC endpoint (default from config)")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 2s, 5s, 1m)")
	cmd.Flags().StringVar(&flags.SSH, "ssh", "", "reach the RPC port through this SSH host")
	cmd.Flags().BoolVar(&flags.NoPrompt, "no-prompt", false, "never prompt; use flags and config only")
	cmd.Flags().BoolVar(&flags.Once, "once", false, "print one report and exit instead of opening the dashboard")
	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "report format with --once: text, json, yaml")

	_ = cmd.RegisterFlagCompletionFunc("ssh", completeSSHHosts)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatText, FormatJSON, FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

// completeSSHHosts offers aliases from ~/.ssh/config.
func completeSSHHosts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	hosts, err := sshutil.KnownHosts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sshutil.CompletionHosts(hosts, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// ParseInterval parses an --interval value. Returns zero if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	parsed, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", flag),
			"Use a valid duration like 2s, 5s, or 1m")
	}
	if parsed < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			"Minimum interval is 500ms to avoid overwhelming the node")
	}
	return parsed, nil
}

// ValidateFormat checks the --format value.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown format '%s'", format),
		"Use one of: text, json, yaml")
}
