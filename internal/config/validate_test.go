package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:        "bad scheme",
			mutate:      func(c *Config) { c.DefaultURL = "ftp://node" },
			wantErr:     true,
			errContains: "Invalid RPC URL",
		},
		{
			name:        "no host",
			mutate:      func(c *Config) { c.DefaultURL = "http://" },
			wantErr:     true,
			errContains: "Invalid RPC URL",
		},
		{
			name:        "zero interval",
			mutate:      func(c *Config) { c.UpdateInterval = 0 },
			wantErr:     true,
			errContains: "update_interval",
		},
		{
			name:        "zero poll interval",
			mutate:      func(c *Config) { c.PollInterval = 0 },
			wantErr:     true,
			errContains: "poll_interval",
		},
		{
			name:        "unknown commitment",
			mutate:      func(c *Config) { c.Commitment = "max" },
			wantErr:     true,
			errContains: "commitment",
		},
		{
			name:        "zero block window",
			mutate:      func(c *Config) { c.BlockWindow = 0 },
			wantErr:     true,
			errContains: "block_window",
		},
		{
			name:        "negative latency threshold",
			mutate:      func(c *Config) { c.Thresholds.Latency = -time.Second },
			wantErr:     true,
			errContains: "thresholds.latency",
		},
		{
			name:        "zero congestion threshold",
			mutate:      func(c *Config) { c.Thresholds.CongestionTPS = 0 },
			wantErr:     true,
			errContains: "thresholds.congestion_tps",
		},
		{
			name: "confirmation interval longer than timeout",
			mutate: func(c *Config) {
				c.Confirmation.Interval = time.Minute
			},
			wantErr:     true,
			errContains: "confirmation.interval",
		},
		{
			name: "tunnel with bad remote addr",
			mutate: func(c *Config) {
				c.SSH.Host = "validator"
				c.SSH.RemoteAddr = "8899"
			},
			wantErr:     true,
			errContains: "ssh.remote_addr",
		},
		{
			name: "remote addr ignored without tunnel",
			mutate: func(c *Config) {
				c.SSH.RemoteAddr = "garbage"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.NoError(t, Validate(nil))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://api.mainnet-beta.solana.com"))
	assert.NoError(t, ValidateURL("http://127.0.0.1:8899"))
	assert.Error(t, ValidateURL("api.mainnet-beta.solana.com"))
	assert.Error(t, ValidateURL(""))
}
