package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_currency", func(c *Config) { c.Account.Currency = "" }},
		{"zero_start_cash", func(c *Config) { c.Account.StartCash = 0 }},
		{"negative_start_cash", func(c *Config) { c.Account.StartCash = -1 }},
		{"bad_store_type", func(c *Config) { c.Store.Type = "postgres" }},
		{"sqlite_without_path", func(c *Config) { c.Store.Type = "sqlite"; c.Store.DBPath = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMemoryStoreNeedsNoPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Store.Type = "memory"
	cfg.Store.DBPath = ""
	assert.NoError(t, cfg.Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "papertrade.yaml")

	cfg := Default()
	cfg.Account.StartCash = 50000
	cfg.Trading.AllowNegativePositions = false
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "papertrade.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not config"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
