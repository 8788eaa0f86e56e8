package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.DefaultURL)
	assert.Equal(t, uint(5), cfg.UpdateInterval)
	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "confirmed", cfg.Commitment)
	assert.Equal(t, "1.14.0", cfg.ExpectedVersion)
	assert.Equal(t, uint64(100), cfg.BlockWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.Thresholds.Latency)
	assert.Equal(t, 1500.0, cfg.Thresholds.CongestionTPS)
	assert.Equal(t, 30*time.Second, cfg.Confirmation.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Confirmation.Interval)
	assert.False(t, cfg.TunnelEnabled())
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
default_url = "http://localhost:8899"
update_interval = 10
commitment = "finalized"
expected_version = "1.18.2"

[thresholds]
latency = "750ms"
congestion_tps = 2500.0

[ssh]
host = "validator-1"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8899", cfg.DefaultURL)
	assert.Equal(t, 10*time.Second, cfg.Interval())
	assert.Equal(t, "finalized", cfg.Commitment)
	assert.Equal(t, "1.18.2", cfg.ExpectedVersion)
	assert.Equal(t, 750*time.Millisecond, cfg.Thresholds.Latency)
	assert.Equal(t, 2500.0, cfg.Thresholds.CongestionTPS)
	assert.Equal(t, "validator-1", cfg.SSH.Host)
	assert.True(t, cfg.TunnelEnabled())

	// Untouched keys keep defaults
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Confirmation.Timeout)
	assert.Equal(t, DefaultTunnelRemote, cfg.SSH.RemoteAddr)
}

func TestLoad_OriginalFileShape(t *testing.T) {
	// Files written by earlier releases only carry these two keys.
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := "default_url = \"https://api.devnet.solana.com\"\nupdate_interval = 3\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.DefaultURL)
	assert.Equal(t, uint(3), cfg.UpdateInterval)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("default_url = [unterminated"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadOrCreate_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solprobe", "config.toml")

	cfg, err := loadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "default config should be written on first run")

	// A second load reads the file back to the same values.
	again, err := loadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_ExplicitMissing(t *testing.T) {
	_, _, err := LoadOrCreate(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.DefaultURL = "http://10.0.0.5:8899"
	cfg.UpdateInterval = 2
	cfg.Confirmation.Timeout = 45 * time.Second
	cfg.SSH.Host = "ops@validator"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
