package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"table-combiner/internal/config"
	"table-combiner/internal/logging"
	"table-combiner/internal/pipeline"
)

// NewInspectCommand creates the 'inspect' subcommand, a dry run that shows
// which files would be consolidated and the final sheet-name plan
// Usage: table-combiner inspect --input ./reports
func NewInspectCommand() *cobra.Command {
	var inputFolder string
	var delimiter string
	var nameAfterUnderscore bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Preview the sheet-name plan without writing anything",
		Long: `Read every supported file in a folder and print the sheet names the
combine command would produce, including collision renames and truncations.
No output file is written. Source files are still opened and parsed, since
multi-sheet workbooks contribute one sheet per worksheet.

Example:
  table-combiner inspect --input ./reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspectCommand(inputFolder, delimiter, nameAfterUnderscore, quiet)
		},
	}

	cmd.Flags().StringVarP(&inputFolder, "input", "i", "", config.InputFolderDescription+" (required)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", config.DelimiterDescription)
	cmd.Flags().BoolVar(&nameAfterUnderscore, "name-after-underscore", false, config.NameAfterUnderscoreDescription)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress info logs (warnings and errors only)")
	cmd.MarkFlagRequired("input")

	return cmd
}

// runInspectCommand executes the dry run and prints the plan
func runInspectCommand(inputFolder, delimiter string, nameAfterUnderscore, quiet bool) error {
	log := logging.New(quiet)

	folder, opts, err := resolveInput(inputFolder, delimiter, nameAfterUnderscore)
	if err != nil {
		return err
	}

	tables, err := pipeline.Collect(folder, opts, log, nil)
	if err != nil {
		return err
	}

	pipeline.FinalizeNames(tables, log)

	nameWidth := len("SHEET")
	sourceWidth := len("SOURCE")
	for _, t := range tables {
		if n := len([]rune(t.SheetName)); n > nameWidth {
			nameWidth = n
		}
		if n := len(t.SourceFile); n > sourceWidth {
			sourceWidth = n
		}
	}

	fmt.Printf("%-*s  %-*s  %s\n", nameWidth, "SHEET", sourceWidth, "SOURCE", "SIZE")
	for _, t := range tables {
		fmt.Printf("%-*s  %-*s  %dx%d\n",
			nameWidth, t.SheetName, sourceWidth, t.SourceFile, t.RowCount(), t.ColumnCount())
	}
	fmt.Printf("\n%d sheet(s) planned\n", len(tables))

	return nil
}
