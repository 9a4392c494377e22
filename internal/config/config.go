package config

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Log        LogConfig      `mapstructure:"log"`
	Balance    BalanceConfig  `mapstructure:"balance"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// BalanceConfig sizes the background balance workers.
type BalanceConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Currency: money.BRL},
		Log:      LogConfig{Level: "warn"},
		Balance:  BalanceConfig{Workers: 4, QueueSize: 64},
	}
}

// Validate normalizes the loaded values and rejects the ones the program
// cannot run with.
func (c *Config) Validate() error {
	c.Defaults.Currency = strings.ToUpper(strings.TrimSpace(c.Defaults.Currency))
	if c.Defaults.Currency == "" {
		c.Defaults.Currency = money.BRL
	}
	cur := money.GetCurrency(c.Defaults.Currency)
	if cur == nil {
		return fmt.Errorf("defaults.currency: unknown currency code '%s'", c.Defaults.Currency)
	}
	if cur.Fraction != 2 {
		return fmt.Errorf("defaults.currency: '%s' has %d decimals, only 2 are supported", cur.Code, cur.Fraction)
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "":
		c.Log.Level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: must be one of debug, info, warn, error (got '%s')", c.Log.Level)
	}

	if c.Balance.Workers < 1 {
		return fmt.Errorf("balance.workers: must be at least 1 (got %d)", c.Balance.Workers)
	}
	if c.Balance.QueueSize < 1 {
		return fmt.Errorf("balance.queue_size: must be at least 1 (got %d)", c.Balance.QueueSize)
	}
	return nil
}
