package config

import "time"

// Default values used when the config file omits a setting.
const (
	DefaultURL             = "https://api.mainnet-beta.solana.com"
	DefaultUpdateInterval  = 5 // seconds
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultRequestTimeout  = 10 * time.Second
	DefaultCommitment      = "confirmed"
	DefaultExpectedVersion = "1.14.0"
	DefaultLatency         = 500 * time.Millisecond
	DefaultCongestionTPS   = 1500.0
	DefaultConfirmTimeout  = 30 * time.Second
	DefaultConfirmInterval = 100 * time.Millisecond
	DefaultBlockWindow     = 100
	DefaultTunnelRemote    = "127.0.0.1:8899"
)

// Config represents the solprobe config.toml file.
type Config struct {
	// DefaultURL is the RPC endpoint used when --url is not given.
	DefaultURL string `mapstructure:"default_url"`

	// UpdateInterval is the automatic refresh cadence in whole seconds.
	UpdateInterval uint `mapstructure:"update_interval"`

	// PollInterval bounds how long the dashboard waits for input before
	// checking whether a refresh is due.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// RequestTimeout caps a single RPC round trip.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Commitment is sent with slot/epoch queries (processed, confirmed, finalized).
	Commitment string `mapstructure:"commitment"`

	// ExpectedVersion is the node version baseline for the mismatch check.
	ExpectedVersion string `mapstructure:"expected_version"`

	// BlockWindow is how many recent slots the block count query spans.
	BlockWindow uint64 `mapstructure:"block_window"`

	Thresholds   ThresholdConfig    `mapstructure:"thresholds"`
	Confirmation ConfirmationConfig `mapstructure:"confirmation"`
	SSH          SSHConfig          `mapstructure:"ssh"`
}

// ThresholdConfig holds the limits that turn raw metrics into health flags.
type ThresholdConfig struct {
	// Latency above which a single getSlot round trip is flagged.
	Latency time.Duration `mapstructure:"latency"`

	// CongestionTPS above which (strictly) the network is flagged congested.
	CongestionTPS float64 `mapstructure:"congestion_tps"`
}

// ConfirmationConfig controls the slot-advance probe.
type ConfirmationConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

// SSHConfig routes RPC traffic through an SSH connection when Host is set.
type SSHConfig struct {
	// Host is an SSH config alias, hostname, or user@host[:port].
	Host string `mapstructure:"host"`

	// RemoteAddr is the RPC listener address as seen from the SSH host.
	RemoteAddr string `mapstructure:"remote_addr"`
}

// Interval returns UpdateInterval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Second
}

// TunnelEnabled reports whether RPC traffic should go through SSH.
func (c *Config) TunnelEnabled() bool {
	return c.SSH.Host != ""
}

// DefaultConfig returns a Config with every setting at its default.
func DefaultConfig() *Config {
	return &Config{
		DefaultURL:      DefaultURL,
		UpdateInterval:  DefaultUpdateInterval,
		PollInterval:    DefaultPollInterval,
		RequestTimeout:  DefaultRequestTimeout,
		Commitment:      DefaultCommitment,
		ExpectedVersion: DefaultExpectedVersion,
		BlockWindow:     DefaultBlockWindow,
		Thresholds: ThresholdConfig{
			Latency:       DefaultLatency,
			CongestionTPS: DefaultCongestionTPS,
		},
		Confirmation: ConfirmationConfig{
			Timeout:  DefaultConfirmTimeout,
			Interval: DefaultConfirmInterval,
		},
		SSH: SSHConfig{
			RemoteAddr: DefaultTunnelRemote,
		},
	}
}
