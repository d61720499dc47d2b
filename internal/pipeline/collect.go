package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"table-combiner/internal/config"
	"table-combiner/internal/logging"
	"table-combiner/internal/models"
	"table-combiner/internal/naming"
	"table-combiner/internal/parser"
)

// Options controls how source files are parsed and named
type Options struct {
	// NameAfterUnderscore derives sheet names from the part of the filename
	// stem after the last underscore
	NameAfterUnderscore bool

	// Delimiter overrides the per-extension delimiter for .csv/.txt files.
	// Zero means use the default.
	Delimiter rune
}

// Collect parses every supported file in folder into tables, in discovery
// order. A file that cannot be parsed is logged and skipped; the run fails
// only when nothing could be collected. The progress callback, when not
// nil, is invoked once per processed file.
func Collect(folder string, opts Options, log *logging.Logger, progress func()) ([]models.Table, error) {
	files, err := Discover(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported files (.xlsx/.xlsm/.xls/.csv/.tsv/.txt) found in %s", folder)
	}
	return CollectFiles(files, opts, log, progress)
}

// CollectFiles parses an already-discovered file list. Split out from
// Collect so callers that need the file count up front (for progress
// reporting) can discover first.
func CollectFiles(files []string, opts Options, log *logging.Logger, progress func()) ([]models.Table, error) {
	var tables []models.Table
	for _, path := range files {
		tables = append(tables, collectFile(path, opts, log)...)
		if progress != nil {
			progress()
		}
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("none of the %d discovered files could be parsed", len(files))
	}

	return tables, nil
}

// collectFile parses one source file into zero or more tables
func collectFile(path string, opts Options, log *logging.Logger) []models.Table {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	if config.WorkbookExtensions[ext] {
		return collectWorkbook(path, ext, opts, log)
	}
	return collectDelimited(path, opts, log)
}

// collectWorkbook reads a spreadsheet file. Single-sheet workbooks are
// renamed after their source file; multi-sheet workbooks keep the original
// sheet names.
func collectWorkbook(path, ext string, opts Options, log *logging.Logger) []models.Table {
	name := filepath.Base(path)

	var tables []models.Table
	var err error
	if ext == ".xls" {
		tables, err = parser.ReadLegacyWorkbook(path)
	} else {
		tables, err = parser.ReadWorkbook(path)
	}
	if err != nil {
		log.Warn("skipping %s: %v", name, err)
		return nil
	}

	if len(tables) == 1 {
		tables[0].SheetName = naming.DeriveFromFilename(name, opts.NameAfterUnderscore)
		log.Info("[excel] %s -> sheet %q", name, tables[0].SheetName)
		return tables
	}

	log.Info("[excel] %s -> %d sheets kept under their original names", name, len(tables))
	return tables
}

// collectDelimited reads a delimited text file as one table
func collectDelimited(path string, opts Options, log *logging.Logger) []models.Table {
	name := filepath.Base(path)

	table, encoding, err := parser.ReadDelimited(path, parser.DelimiterFor(path, opts.Delimiter))
	if err != nil {
		log.Warn("skipping %s: %v", name, err)
		return nil
	}
	if encoding == parser.EncodingGBK {
		log.Warn("UTF-8 decoding failed for %s, fell back to GBK", name)
	}

	table.SheetName = naming.DeriveFromFilename(name, opts.NameAfterUnderscore)
	log.Info("[text] %s -> sheet %q", name, table.SheetName)
	return []models.Table{table}
}

// FinalizeNames applies legalization, truncation, and collision resolution
// to every proposed sheet name, in order. Adjusted names are logged.
func FinalizeNames(tables []models.Table, log *logging.Logger) {
	planner := naming.NewPlanner()
	for i := range tables {
		proposed := tables[i].SheetName
		final := planner.Claim(proposed)
		if final != naming.Legalize(proposed) {
			log.Warn("sheet name adjusted: %q -> %q", proposed, final)
		}
		tables[i].SheetName = final
	}
}
