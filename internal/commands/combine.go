// Package commands implements the CLI commands for the table combiner
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"table-combiner/internal/config"
	"table-combiner/internal/logging"
	"table-combiner/internal/pipeline"
	"table-combiner/internal/workbook"
)

// NewCombineCommand creates the 'combine' subcommand, the core operation:
// consolidate every tabular file in a folder into one workbook
// Usage: table-combiner combine --input ./reports [--output combined.xlsx]
func NewCombineCommand() *cobra.Command {
	var inputFolder string
	var outputName string
	var delimiter string
	var nameAfterUnderscore bool
	var noProgress bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Merge all tabular files in a folder into one workbook",
		Long: `Consolidate every supported file in a folder into a single multi-sheet
.xlsx workbook.

Supported inputs: .xlsx, .xlsm, .xls, .csv, .tsv, .txt. Files are processed
in name order. Delimited files and single-sheet workbooks become one sheet
named after the source file; multi-sheet workbooks keep their original sheet
names. Names are cleaned of illegal characters, truncated to 31 characters,
and deduplicated with _N suffixes.

Text files that are not valid UTF-8 are retried as GBK. A file that cannot
be parsed at all is skipped with a warning.

A bare --output filename is written into the input folder; a path is used
as given.

Example:
  table-combiner combine --input ./reports --output 2024-q3.xlsx
  table-combiner combine -i ./batch -o merged.xlsx --name-after-underscore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombineCommand(inputFolder, outputName, delimiter,
				nameAfterUnderscore, noProgress, quiet)
		},
	}

	cmd.Flags().StringVarP(&inputFolder, "input", "i", "", config.InputFolderDescription+" (required)")
	cmd.Flags().StringVarP(&outputName, "output", "o", config.DefaultOutputName, "Output workbook filename")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", config.DelimiterDescription)
	cmd.Flags().BoolVar(&nameAfterUnderscore, "name-after-underscore", false, config.NameAfterUnderscoreDescription)
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress info logs (warnings and errors only)")
	cmd.MarkFlagRequired("input")

	return cmd
}

// runCombineCommand executes the consolidation flow
func runCombineCommand(inputFolder, outputName, delimiter string, nameAfterUnderscore, noProgress, quiet bool) error {
	log := logging.New(quiet)

	folder, opts, err := resolveInput(inputFolder, delimiter, nameAfterUnderscore)
	if err != nil {
		return err
	}

	files, err := pipeline.Discover(folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported files (.xlsx/.xlsm/.xls/.csv/.tsv/.txt) found in %s", folder)
	}
	log.Info("found %d file(s) in %s", len(files), folder)

	var progress func()
	var bar *progressbar.ProgressBar
	if !quiet && !noProgress {
		bar = progressbar.New(len(files))
		progress = func() { bar.Add(1) }
	}

	tables, err := pipeline.CollectFiles(files, opts, log, progress)
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	pipeline.FinalizeNames(tables, log)

	outPath := resolveOutputPath(folder, outputName)
	if err := workbook.Write(tables, outPath); err != nil {
		return err
	}

	log.Success("saved merged workbook with %d sheet(s) -> %s", len(tables), outPath)
	return nil
}

// resolveInput validates the input folder and shared parsing flags
func resolveInput(inputFolder, delimiter string, nameAfterUnderscore bool) (string, pipeline.Options, error) {
	opts := pipeline.Options{NameAfterUnderscore: nameAfterUnderscore}

	if delimiter != "" {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return "", opts, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts.Delimiter = runes[0]
	}

	folder, err := filepath.Abs(inputFolder)
	if err != nil {
		return "", opts, fmt.Errorf("failed to resolve input folder: %w", err)
	}
	info, err := os.Stat(folder)
	if os.IsNotExist(err) {
		return "", opts, fmt.Errorf("input folder does not exist: %s", folder)
	}
	if err != nil {
		return "", opts, fmt.Errorf("failed to stat input folder: %w", err)
	}
	if !info.IsDir() {
		return "", opts, fmt.Errorf("input path is not a folder: %s", folder)
	}

	return folder, opts, nil
}

// resolveOutputPath places a bare filename inside the input folder and
// keeps explicit paths as given
func resolveOutputPath(folder, outputName string) string {
	if filepath.Dir(outputName) == "." {
		return filepath.Join(folder, outputName)
	}
	return outputName
}
