package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/solprobe/internal/config"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/logger"
	"github.com/rileyhilliard/solprobe/internal/monitor"
	"github.com/rileyhilliard/solprobe/internal/probe"
	"github.com/rileyhilliard/solprobe/internal/rpc"
	"github.com/rileyhilliard/solprobe/pkg/sshutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// LogFileName is written next to the config file while the dashboard runs.
const LogFileName = "solprobe.log"

// DashboardOptions is the resolved input of one dashboard run.
type DashboardOptions struct {
	Tab      monitor.Tab
	URL      string
	Interval time.Duration
	SSHHost  string
	Once     bool
	Format   string
}

// dashboardCommand resolves flags, prompts and config, then runs either a
// one-shot report or the interactive dashboard.
func dashboardCommand(cmd *cobra.Command, tab monitor.Tab, flags DashboardFlags) error {
	cfg, cfgPath, err := config.LoadOrCreate(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	interactive := !flags.NoPrompt && !flags.Once && term.IsTerminal(int(os.Stdin.Fd()))
	opts, err := resolveOptions(cfg, tab, flags, interactive, huhPrompter{})
	if err != nil {
		return err
	}

	if opts.Once {
		log := logger.NewEnvLogger("[solprobe]")
		eval, closeFn := newEvaluator(cfg, opts, log)
		defer closeFn()

		var reportEval ReportEvaluator = eval
		if opts.Format == FormatText && term.IsTerminal(int(os.Stderr.Fd())) {
			reportEval = withProgress(eval, os.Stderr, opts.URL)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		return runReport(ctx, cmd.OutOrStdout(), reportEval, opts)
	}

	return runDashboard(cfg, cfgPath, opts)
}

// Prompter asks for values the user did not pass as flags.
type Prompter interface {
	URL(def string) (string, error)
	Interval(def uint) (time.Duration, error)
}

// resolveOptions merges flags, prompts and config. Flags win over prompts,
// prompts win over config.
func resolveOptions(cfg *config.Config, tab monitor.Tab, flags DashboardFlags, interactive bool, p Prompter) (DashboardOptions, error) {
	opts := DashboardOptions{
		Tab:     tab,
		SSHHost: flags.SSH,
		Once:    flags.Once,
		Format:  strings.ToLower(flags.Format),
	}
	if opts.SSHHost == "" {
		opts.SSHHost = cfg.SSH.Host
	}

	if opts.Once {
		if err := ValidateFormat(opts.Format); err != nil {
			return opts, err
		}
	}

	interval, err := ParseInterval(flags.Interval)
	if err != nil {
		return opts, err
	}

	opts.URL = flags.URL
	if opts.URL == "" {
		def := cfg.DefaultURL
		if opts.SSHHost != "" {
			def = "http://" + remoteAddr(cfg)
		}
		opts.URL = def
		if interactive {
			if opts.URL, err = p.URL(def); err != nil {
				return opts, err
			}
		}
	}
	if err := config.ValidateURL(opts.URL); err != nil {
		return opts, err
	}

	opts.Interval = interval
	if opts.Interval == 0 {
		opts.Interval = cfg.Interval()
		if interactive && tab == monitor.TabMonitor {
			if opts.Interval, err = p.Interval(cfg.UpdateInterval); err != nil {
				return opts, err
			}
		}
	}

	return opts, nil
}

func remoteAddr(cfg *config.Config) string {
	if cfg.SSH.RemoteAddr != "" {
		return cfg.SSH.RemoteAddr
	}
	return config.DefaultTunnelRemote
}

// newEvaluator builds the RPC client (tunneled when an SSH host is set)
// and the evaluator on top of it. The returned func releases the tunnel.
func newEvaluator(cfg *config.Config, opts DashboardOptions, log logger.Logger) (*probe.Evaluator, func()) {
	clientOpts := []rpc.Option{
		rpc.WithTimeout(cfg.RequestTimeout),
		rpc.WithCommitment(cfg.Commitment),
		rpc.WithLogger(log),
	}

	closeFn := func() {}
	if opts.SSHHost != "" {
		tunnel := sshutil.NewTunnel(opts.SSHHost, cfg.RequestTimeout, sshutil.WithTunnelLogger(log))
		clientOpts = append(clientOpts, rpc.WithHTTPClient(tunnel.HTTPClient(cfg.RequestTimeout)))
		closeFn = func() {
			if err := tunnel.Close(); err != nil {
				log.Debug("closing SSH tunnel to %s: %v", tunnel.Host(), err)
			}
		}
	}

	client := rpc.NewClient(opts.URL, clientOpts...)
	eval := probe.NewEvaluator(client,
		probe.WithSettings(probe.SettingsFrom(cfg)),
		probe.WithLogger(log))
	return eval, closeFn
}

// runDashboard starts the Bubble Tea program and blocks until the user quits.
func runDashboard(cfg *config.Config, cfgPath string, opts DashboardOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"The dashboard needs an interactive terminal",
			"Run it in a terminal, or use --once for a plain report")
	}

	logPath := filepath.Join(filepath.Dir(cfgPath), LogFileName)
	logFile, err := tea.LogToFile(logPath, "solprobe")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't open the log file",
			fmt.Sprintf("Check that %s is writable", filepath.Dir(logPath)))
	}
	defer logFile.Close()

	log := logger.NewEnvLogger("[monitor]")
	log.Info("starting dashboard for %s every %s", opts.URL, opts.Interval)

	eval, closeFn := newEvaluator(cfg, opts, log)
	defer closeFn()

	model := monitor.NewModel(eval, monitor.Options{
		URL:          opts.URL,
		Interval:     opts.Interval,
		PollInterval: cfg.PollInterval,
		StartTab:     opts.Tab,
		Logger:       log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Your terminal has been restored; see "+logPath+" for details")
	}
	return nil
}
