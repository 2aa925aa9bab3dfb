package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/market"
	"github.com/vladche/papertrade/portfolio"
)

var (
	valueHistoryDir string
	valueNotes      bool
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Reconstruct portfolio value over time from local price history",
	Long: `Reconstruct the total portfolio value series from the ledger and
per-symbol bar files.

Each current holding needs a bar file named <CODE>.csv (optionally
.csv.xz) in the history directory, columns
time;open;high;low;close;volume. Holdings without a bar file are
skipped with a warning.`,
	Args: cobra.NoArgs,
	RunE: runValue,
}

func init() {
	rootCmd.AddCommand(valueCmd)

	valueCmd.Flags().StringVarP(&valueHistoryDir, "history", "H", "", "bar file directory (default from config)")
	valueCmd.Flags().BoolVar(&valueNotes, "notes", false, "print the composition note for every point")
}

func runValue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := valueHistoryDir
	if dir == "" {
		dir = cfg.History.Dir
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	l := portfolio.NewLedger(st, portfolio.Options{
		StartCash:              cfg.Account.StartCash,
		AllowNegativePositions: cfg.Trading.AllowNegativePositions,
	})

	holdings := l.Holdings()
	if len(holdings) == 0 {
		fmt.Println("no open positions, nothing to chart")
		return nil
	}

	var histories []market.History
	for _, item := range holdings {
		h, ok := loadItemHistory(dir, item)
		if !ok {
			continue
		}
		histories = append(histories, h)
	}

	points, notes := l.ValueSeries(histories)
	if len(points) == 0 {
		fmt.Println("not enough history to reconstruct a value series")
		return nil
	}

	for i, p := range points {
		if valueNotes {
			fmt.Printf("%s  %12.2f  %s\n", p.Time.Format(time.RFC3339), p.Price, notes[i])
		} else {
			fmt.Printf("%s  %12.2f\n", p.Time.Format(time.RFC3339), p.Price)
		}
	}

	current := l.CurrentPoint(histories)
	fmt.Printf("current portfolio value: %.2f\n", current.Price)

	// cache the headline so the next run can show it without history
	summary := portfolio.Summary{
		Name:        "Portfolio",
		Description: fmt.Sprintf("%d holdings", len(holdings)),
		Amount:      current.Price,
		IsPortfolio: true,
	}
	if err := l.SetInfo(summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}

func loadItemHistory(dir string, item market.Item) (market.History, bool) {
	for _, name := range []string{item.Code + ".csv", item.Code + ".csv.xz"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		h, stats, err := market.LoadHistory(item, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
			return market.History{}, false
		}
		if stats.BadLines > 0 {
			fmt.Fprintf(os.Stderr, "warning: %s: skipped %d bad lines\n", path, stats.BadLines)
		}
		return h, true
	}
	fmt.Fprintf(os.Stderr, "warning: no bar file for %s in %s\n", item.Code, dir)
	return market.History{}, false
}
