package commands

import (
	"fmt"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"table-combiner/internal/config"
	"table-combiner/internal/database"
	"table-combiner/internal/logging"
	"table-combiner/internal/parser"
	"table-combiner/internal/pipeline"
)

// NewExportCommand creates the 'export' subcommand for consolidating a
// folder into a SQLite database instead of a workbook
// Usage: table-combiner export --input ./reports [--db tables.db] [--append]
func NewExportCommand() *cobra.Command {
	var inputFolder string
	var dbFile string
	var delimiter string
	var nameAfterUnderscore bool
	var appendMode bool
	var noProgress bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load all tabular files in a folder into a SQLite database",
		Long: `Consolidate every supported file in a folder into a SQLite database,
one table per would-be sheet. Sheet naming follows the same rules as the
combine command; table names are additionally sanitized to SQL identifiers.

The first row of each table supplies the column names when it looks like a
header; otherwise column_N names are generated. Column types (INTEGER, REAL,
DATETIME, BOOLEAN, TEXT) are inferred from a sample of the data.

By default existing tables of the same name are replaced. Use --append to
add rows to existing tables instead.

Example:
  table-combiner export --input ./reports --db reports.db
  table-combiner query --db reports.db --sql "SELECT COUNT(*) FROM orders"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportCommand(inputFolder, dbFile, delimiter,
				nameAfterUnderscore, appendMode, noProgress, quiet)
		},
	}

	cmd.Flags().StringVarP(&inputFolder, "input", "i", "", config.InputFolderDescription+" (required)")
	cmd.Flags().StringVarP(&dbFile, "db", "d", config.DefaultDatabaseFile, config.DatabaseFileDescription)
	cmd.Flags().StringVar(&delimiter, "delimiter", "", config.DelimiterDescription)
	cmd.Flags().BoolVar(&nameAfterUnderscore, "name-after-underscore", false, config.NameAfterUnderscoreDescription)
	cmd.Flags().BoolVar(&appendMode, "append", false, "Append to existing tables instead of replacing them")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress info logs (warnings and errors only)")
	cmd.MarkFlagRequired("input")

	return cmd
}

// runExportCommand executes the SQLite export flow
func runExportCommand(inputFolder, dbFile, delimiter string, nameAfterUnderscore, appendMode, noProgress, quiet bool) error {
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

	db, err := database.Initialize(dbFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	exported := 0
	var totalRows int64
	seen := make(map[string]bool)

	for _, table := range tables {
		headers, records := parser.SplitHeader(table)
		if len(headers) == 0 {
			log.Warn("skipping empty table %q from %s", table.SheetName, table.SourceFile)
			continue
		}

		tableName := uniqueSQLName(parser.SanitizeSQLName(table.SheetName), seen)

		schema, err := parser.DetectSchema(headers, records, tableName)
		if err != nil {
			log.Warn("skipping table %q: %v", table.SheetName, err)
			continue
		}
		if err := database.CreateTable(db, schema, !appendMode); err != nil {
			return err
		}
		count, err := database.InsertRows(db, schema, records)
		if err != nil {
			return err
		}

		log.Info("exported %q -> table %s (%d rows)", table.SheetName, tableName, count)
		exported++
		totalRows += count
	}

	if exported == 0 {
		return fmt.Errorf("no tables could be exported")
	}

	log.Success("exported %d table(s), %d row(s) -> %s", exported, totalRows, dbFile)
	return nil
}

// uniqueSQLName deduplicates sanitized table names with _N suffixes
func uniqueSQLName(base string, seen map[string]bool) string {
	name := base
	for i := 1; seen[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	seen[name] = true
	return name
}
