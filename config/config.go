// Package config loads the papertrade configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Trading TradingConfig `json:"trading" yaml:"trading"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// AccountConfig describes the simulated account.
type AccountConfig struct {
	ID        string  `json:"id" yaml:"id"`
	Currency  string  `json:"currency" yaml:"currency"`
	StartCash float64 `json:"start_cash" yaml:"start_cash"`
}

// StoreConfig selects the ledger store backend.
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// TradingConfig holds trading policy switches.
type TradingConfig struct {
	// AllowNegativePositions keeps the historical permissive behavior of
	// letting sells drive a position below zero.
	AllowNegativePositions bool `json:"allow_negative_positions" yaml:"allow_negative_positions"`
}

// HistoryConfig points at local bar files for the value chart.
type HistoryConfig struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LoadFromFile reads a configuration file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartCash <= 0 {
		return fmt.Errorf("account.start_cash must be positive")
	}
	switch c.Store.Type {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path required for sqlite store")
		}
	case "memory":
	default:
		return fmt.Errorf("store.type must be 'sqlite' or 'memory'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:        "PAPER-001",
			Currency:  "USD",
			StartCash: 100000,
		},
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: "./papertrade.sqlite",
		},
		Trading: TradingConfig{
			AllowNegativePositions: true,
		},
		History: HistoryConfig{
			Dir: "./history",
		},
	}
}
