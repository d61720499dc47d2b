// Package config provides shared configuration constants and settings
// for the table combiner application
package config

const (
	// MaxSheetNameLength is the hard limit Excel places on worksheet names.
	// Derived names longer than this are truncated before writing.
	MaxSheetNameLength = 31

	// FallbackSheetName is used when a derived sheet name is empty after
	// illegal characters have been stripped
	FallbackSheetName = "Sheet"

	// EmptyTableHeader is written as the single cell of a sheet whose source
	// table contained no columns, keeping the output workbook valid
	EmptyTableHeader = "(empty)"

	// DefaultOutputName is the workbook filename used by the combine command
	// when no --output flag is provided. A bare filename is resolved inside
	// the input folder.
	DefaultOutputName = "combined.xlsx"

	// DefaultDatabaseFile is the default SQLite database filename
	// used by the export and query commands when no --db flag is provided
	DefaultDatabaseFile = "tables.db"

	// InputFolderDescription is the help text for the input folder flag
	InputFolderDescription = "Folder containing tabular files (.xlsx/.xlsm/.xls/.csv/.tsv/.txt)"

	// DatabaseFileDescription is the help text for the database file flag
	DatabaseFileDescription = "Path to SQLite database file"

	// NameAfterUnderscoreDescription is the help text for the sheet naming flag
	NameAfterUnderscoreDescription = "Derive sheet names from the part of the filename stem after the last underscore"

	// DelimiterDescription is the help text for the delimiter override flag
	DelimiterDescription = "Field delimiter for .csv/.txt files (single character)"

	// Schema detection settings for the SQLite export
	SchemaDetectionSampleSize = 1000
	TypeInferenceThreshold    = 0.8 // 80% of values must match for type assignment

	// Column sizing bounds for the output workbook, in Excel width units
	MinColumnWidth = 8.0
	MaxColumnWidth = 60.0
)

// WorkbookExtensions lists the spreadsheet formats that are read
// sheet by sheet. Keys are lowercase extensions including the dot.
var WorkbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
}

// DelimitedExtensions lists the text formats read as one table per file
var DelimitedExtensions = map[string]bool{
	".csv": true,
	".tsv": true,
	".txt": true,
}

// IsSupportedExtension reports whether ext (lowercase, with leading dot)
// names a file type the pipeline can consolidate
func IsSupportedExtension(ext string) bool {
	return WorkbookExtensions[ext] || DelimitedExtensions[ext]
}
