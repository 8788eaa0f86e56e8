package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
)

// MinInterval is the shortest refresh cadence accepted. Each refresh issues
// around a dozen RPC calls, so anything faster mostly hits rate limits.
const MinInterval = 500 * time.Millisecond

// Commitments are the commitment levels a node accepts.
var Commitments = map[string]bool{
	"processed": true,
	"confirmed": true,
	"finalized": true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if err := ValidateURL(cfg.DefaultURL); err != nil {
		return err
	}

	if cfg.Interval() < MinInterval {
		return errors.New(errors.ErrConfig,
			"update_interval must be at least 1 second",
			"Set update_interval in config.toml to a whole number of seconds, e.g. 5")
	}

	if cfg.PollInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("poll_interval must be positive, got %s", cfg.PollInterval),
			"Use a value like 100ms")
	}

	if cfg.RequestTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("request_timeout must be positive, got %s", cfg.RequestTimeout),
			"Use a value like 10s")
	}

	if !Commitments[cfg.Commitment] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown commitment '%s'", cfg.Commitment),
			"Use one of: processed, confirmed, finalized")
	}

	if cfg.BlockWindow == 0 {
		return errors.New(errors.ErrConfig,
			"block_window must be greater than zero",
			"The default is 100 slots")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the [thresholds] section in config.toml.")
	}

	if err := validateConfirmation(cfg.Confirmation); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the [confirmation] section in config.toml.")
	}

	if cfg.TunnelEnabled() {
		if _, _, err := net.SplitHostPort(cfg.SSH.RemoteAddr); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid ssh.remote_addr '%s'", cfg.SSH.RemoteAddr),
				"Use host:port as seen from the SSH host, e.g. 127.0.0.1:8899")
		}
	}

	return nil
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid RPC URL '%s'", raw),
			"Use an http:// or https:// endpoint, e.g. https://api.mainnet-beta.solana.com")
	}
	return nil
}

func validateThresholds(t ThresholdConfig) error {
	if t.Latency <= 0 {
		return fmt.Errorf("thresholds.latency must be positive, got %s", t.Latency)
	}
	if t.CongestionTPS <= 0 {
		return fmt.Errorf("thresholds.congestion_tps must be positive, got %g", t.CongestionTPS)
	}
	return nil
}

func validateConfirmation(c ConfirmationConfig) error {
	if c.Timeout <= 0 {
		return fmt.Errorf("confirmation.timeout must be positive, got %s", c.Timeout)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("confirmation.interval must be positive, got %s", c.Interval)
	}
	if c.Interval >= c.Timeout {
		return fmt.Errorf("confirmation.interval (%s) must be shorter than confirmation.timeout (%s)", c.Interval, c.Timeout)
	}
	return nil
}
