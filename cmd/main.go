// Package main provides the CLI entry point for the table combiner
// This tool provides four commands:
// 1. combine - Merge all tabular files in a folder into one .xlsx workbook
// 2. inspect - Preview the sheet-name plan without writing anything
// 3. export  - Load the same files into a SQLite database
// 4. query   - Run read-only SQL against an exported database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"table-combiner/internal/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "table-combiner",
		Short: "A CLI tool for consolidating folders of tabular files",
		Long: `Table Combiner merges batches of per-entity tabular files into a single
consolidated artifact.

It reads spreadsheets (.xlsx/.xlsm/.xls) and delimited text (.csv/.tsv/.txt)
from a folder and writes one multi-sheet workbook, handling sheet naming,
the 31-character limit, name collisions, and non-UTF-8 text encodings along
the way. The same batch can alternatively be exported to a SQLite database
for SQL analysis.`,
	}

	rootCmd.AddCommand(commands.NewCombineCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
