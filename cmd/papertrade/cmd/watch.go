package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/market"
	"github.com/vladche/papertrade/portfolio"
)

var watchMarket string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the saved symbol watchlist",
}

var watchAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Save a symbol to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchAdd,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove <symbol>",
	Short: "Remove a symbol from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchRemove,
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved symbols",
	Args:  cobra.NoArgs,
	RunE:  runWatchList,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	watchCmd.AddCommand(watchListCmd)

	watchCmd.PersistentFlags().StringVarP(&watchMarket, "market", "m", string(market.Stock), "market type: stock, crypto or forex")
}

func openWatchlist() (*portfolio.Watchlist, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return portfolio.NewWatchlist(st), closeStore, nil
}

func watchItem(symbol string) market.Item {
	code := strings.ToUpper(symbol)
	return market.Item{Name: code, Code: code, Type: market.Type(watchMarket)}
}

func runWatchAdd(cmd *cobra.Command, args []string) error {
	w, closeStore, err := openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	item := watchItem(args[0])
	if err := w.Add(item); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Printf("watching %s (%s)\n", item.Code, item.Type)
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	w, closeStore, err := openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	item := watchItem(args[0])
	if err := w.Remove(item); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Printf("stopped watching %s (%s)\n", item.Code, item.Type)
	return nil
}

func runWatchList(cmd *cobra.Command, args []string) error {
	w, closeStore, err := openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	items := w.Items()
	if len(items) == 0 {
		fmt.Println("watchlist is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%-8s %-8s %s\n", item.Code, item.Type, item.Name)
	}
	return nil
}
