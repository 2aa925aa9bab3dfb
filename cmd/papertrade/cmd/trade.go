package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/market"
	"github.com/vladche/papertrade/portfolio"
)

var (
	tradeMarket string
	tradeName   string
)

var buyCmd = &cobra.Command{
	Use:   "buy <symbol> <amount> <price>",
	Short: "Record a buy operation",
	Args:  cobra.ExactArgs(3),
	RunE:  runBuy,
}

var sellCmd = &cobra.Command{
	Use:   "sell <symbol> <amount> <price>",
	Short: "Record a sell operation",
	Args:  cobra.ExactArgs(3),
	RunE:  runSell,
}

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)

	for _, c := range []*cobra.Command{buyCmd, sellCmd} {
		c.Flags().StringVarP(&tradeMarket, "market", "m", string(market.Stock), "market type: stock, crypto or forex")
		c.Flags().StringVarP(&tradeName, "name", "n", "", "display name for the instrument")
	}
}

func runBuy(cmd *cobra.Command, args []string) error {
	return runTrade(args, true)
}

func runSell(cmd *cobra.Command, args []string) error {
	return runTrade(args, false)
}

func runTrade(args []string, buy bool) error {
	item, amount, price, err := parseTradeArgs(args)
	if err != nil {
		return err
	}

	l, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	var op portfolio.Operation
	if buy {
		op, err = l.Buy(item, amount, price)
	} else {
		op, err = l.Sell(item, amount, price)
	}
	if errors.Is(err, portfolio.ErrOversell) {
		return err
	}
	if err != nil {
		// the operation is recorded in memory; only the write-through failed
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	verb := "bought"
	if !buy {
		verb = "sold"
	}
	fmt.Printf("%s %s %s x %s (operation %s)\n", verb, fmtQty(amount), item.Code, fmtQty(price), op.ID)
	fmt.Printf("available cash: %s\n", l.Cash().StringFixed(2))
	return nil
}

func parseTradeArgs(args []string) (market.Item, float64, float64, error) {
	symbol := strings.ToUpper(args[0])

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return market.Item{}, 0, 0, fmt.Errorf("amount must be a positive number, got %q", args[1])
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil || price <= 0 {
		return market.Item{}, 0, 0, fmt.Errorf("price must be a positive number, got %q", args[2])
	}

	typ := market.Type(tradeMarket)
	switch typ {
	case market.Stock, market.Crypto, market.Forex:
	default:
		return market.Item{}, 0, 0, fmt.Errorf("unknown market type %q", tradeMarket)
	}

	name := tradeName
	if name == "" {
		name = symbol
	}
	return market.Item{Name: name, Code: symbol, Type: typ}, amount, price, nil
}

func fmtQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
