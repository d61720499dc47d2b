// Package models defines the data structures used throughout the application
package models

import "fmt"

// Table represents one rectangular block of cell data on its way from a
// source file to a worksheet in the output workbook. Rows carry every cell
// as text, including any header row, exactly as read from the source.
type Table struct {
	SourceFile string     // base name of the file the table came from
	SheetName  string     // proposed sheet name, before legalization and dedup
	Rows       [][]string // cell data in row-major order
}

// RowCount returns the number of rows in the table
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row length in the table.
// Delimited sources may produce ragged rows, so the maximum is used.
func (t Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// IsEmpty reports whether the table holds no cells at all
func (t Table) IsEmpty() bool {
	return t.ColumnCount() == 0
}

// String returns a human-readable summary of the table
func (t Table) String() string {
	return fmt.Sprintf("%s: sheet %q (%d rows x %d cols)",
		t.SourceFile, t.SheetName, t.RowCount(), t.ColumnCount())
}
