package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "BRL", cfg.Defaults.Currency)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Balance.Workers)
	assert.Equal(t, 64, cfg.Balance.QueueSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "currency is normalized",
			mutate: func(c *Config) { c.Defaults.Currency = " usd " },
			check:  func(t *testing.T, c *Config) { assert.Equal(t, "USD", c.Defaults.Currency) },
		},
		{
			name:   "empty currency falls back to BRL",
			mutate: func(c *Config) { c.Defaults.Currency = "" },
			check:  func(t *testing.T, c *Config) { assert.Equal(t, "BRL", c.Defaults.Currency) },
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Defaults.Currency = "XYZ" },
			wantErr: "defaults.currency",
		},
		{
			name:    "currency without cents",
			mutate:  func(c *Config) { c.Defaults.Currency = "JPY" },
			wantErr: "only 2 are supported",
		},
		{
			name:   "log level is lowered",
			mutate: func(c *Config) { c.Log.Level = "DEBUG" },
			check:  func(t *testing.T, c *Config) { assert.Equal(t, "debug", c.Log.Level) },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "no workers",
			mutate:  func(c *Config) { c.Balance.Workers = 0 },
			wantErr: "balance.workers",
		},
		{
			name:    "no queue",
			mutate:  func(c *Config) { c.Balance.QueueSize = -1 },
			wantErr: "balance.queue_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
