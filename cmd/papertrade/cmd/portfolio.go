package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladche/papertrade/portfolio"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Serialize the full ledger as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ledger from an exported JSON file",
	Long: `Replace cash, operations and cash history from a previously
exported JSON file. The import is all-or-nothing: a malformed payload
leaves the current ledger untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	l, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	data, err := l.Export()
	if err != nil {
		return err
	}

	if exportOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("exported ledger to %s\n", exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	l, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := l.Import(data); err != nil {
		var decodeErr *portfolio.DecodeError
		if errors.As(err, &decodeErr) {
			return fmt.Errorf("%s is not a valid ledger export: %w", args[0], decodeErr.Err)
		}
		// decoded and applied, only the write-through failed
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Printf("imported %d operations, cash %s\n", len(l.Log()), l.Cash().StringFixed(2))
	return nil
}
