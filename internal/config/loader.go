package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "solprobe"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.toml"
)

// DefaultPath returns <user config dir>/solprobe/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine the user config directory",
			"Set XDG_CONFIG_HOME or pass --config")
	}
	return filepath.Join(dir, ConfigDirName, ConfigFileName), nil
}

// Load reads config from the specified path. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Check the path, or omit --config to use the default location")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file is valid TOML")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the value types in "+path)
	}

	return cfg, nil
}

// LoadOrCreate loads the config file at explicit, or at DefaultPath when
// explicit is empty. A missing default file is created with defaults; a
// missing explicit file is an error.
// Returns the config and the path it came from.
func LoadOrCreate(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := loadOrCreate(path)
	return cfg, path, err
}

func loadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	} else if !os.IsNotExist(err) {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access config file: "+path,
			"Check file permissions")
	}

	cfg := DefaultConfig()
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	v := viper.New()
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}
	return nil
}

// settings flattens cfg into viper keys. Durations are written as strings
// so the file stays human-editable ("500ms", "30s").
func settings(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"default_url":               cfg.DefaultURL,
		"update_interval":           cfg.UpdateInterval,
		"poll_interval":             cfg.PollInterval.String(),
		"request_timeout":           cfg.RequestTimeout.String(),
		"commitment":                cfg.Commitment,
		"expected_version":          cfg.ExpectedVersion,
		"block_window":              cfg.BlockWindow,
		"thresholds.latency":        cfg.Thresholds.Latency.String(),
		"thresholds.congestion_tps": cfg.Thresholds.CongestionTPS,
		"confirmation.timeout":      cfg.Confirmation.Timeout.String(),
		"confirmation.interval":     cfg.Confirmation.Interval.String(),
		"ssh.host":                  cfg.SSH.Host,
		"ssh.remote_addr":           cfg.SSH.RemoteAddr,
	}
}

// setDefaults registers defaults so partially filled files still decode fully.
func setDefaults(v *viper.Viper) {
	for key, value := range settings(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}
