package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/config"
	"github.com/vladche/papertrade/portfolio"
	"github.com/vladche/papertrade/store"
)

const defaultConfigPath = "./papertrade.yaml"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "A paper-trading portfolio ledger for stocks, crypto and forex",
	Long: `Papertrade maintains a simulated trading portfolio with a virtual
cash balance.

It provides tools for:
  - Recording buy and sell operations against an append-only ledger
  - Tracking positions, holdings and available cash
  - Maintaining a watchlist of saved symbols
  - Reconstructing portfolio value over time from local price history
  - Exporting and importing the full ledger as JSON`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		fmt.Sprintf("config file (default is %s when present)", defaultConfigPath))
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return config.LoadFromFile(defaultConfigPath)
	}
	return config.Default(), nil
}

func openStore(cfg *config.Config) (store.Store, func() error, error) {
	if cfg.Store.Type == "memory" {
		return store.NewMemory(), func() error { return nil }, nil
	}
	s, err := store.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return s, s.Close, nil
}

func openLedger() (*portfolio.Ledger, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	l := portfolio.NewLedger(st, portfolio.Options{
		StartCash:              cfg.Account.StartCash,
		AllowNegativePositions: cfg.Trading.AllowNegativePositions,
	})
	return l, closeStore, nil
}
