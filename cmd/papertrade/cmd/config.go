package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the papertrade configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}
	fmt.Printf("wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("account:  %s (%s), start cash %.2f\n", cfg.Account.ID, cfg.Account.Currency, cfg.Account.StartCash)
	fmt.Printf("store:    %s", cfg.Store.Type)
	if cfg.Store.DBPath != "" {
		fmt.Printf(" (%s)", cfg.Store.DBPath)
	}
	fmt.Println()
	fmt.Printf("trading:  allow_negative_positions=%v\n", cfg.Trading.AllowNegativePositions)
	fmt.Printf("history:  %s\n", cfg.History.Dir)
	return nil
}
