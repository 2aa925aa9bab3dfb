package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List current holdings and their position sizes",
	Args:  cobra.NoArgs,
	RunE:  runPositions,
}

var cashCmd = &cobra.Command{
	Use:   "cash",
	Short: "Show the available cash balance",
	Args:  cobra.NoArgs,
	RunE:  runCash,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(cashCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	l, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	holdings := l.Holdings()
	if len(holdings) == 0 {
		fmt.Println("no open positions")
		return nil
	}

	now := time.Now()
	for _, item := range holdings {
		fmt.Printf("%-8s %-8s %12s\n", item.Code, item.Type, fmtQty(l.Position(item, now)))
	}
	return nil
}

func runCash(cmd *cobra.Command, args []string) error {
	l, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Printf("available cash: %s (started with %s)\n",
		l.Cash().StringFixed(2), l.StartCash().StringFixed(2))
	return nil
}
