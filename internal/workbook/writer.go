// Package workbook writes consolidated tables into a single .xlsx file
package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"table-combiner/internal/config"
	"table-combiner/internal/models"
)

// Write saves the tables as one workbook at outPath, one sheet per table in
// slice order. Sheet names must already be legalized and unique. Parent
// directories are created as needed.
func Write(tables []models.Table, outPath string) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if err := addSheet(f, table, i == 0); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", table.SheetName, err)
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// addSheet creates one worksheet and fills it with the table's rows.
// The first table takes over the default sheet instead of adding one.
func addSheet(f *excelize.File, table models.Table, first bool) error {
	name := table.SheetName

	if first {
		if current := f.GetSheetName(0); current != name {
			if err := f.SetSheetName(current, name); err != nil {
				return err
			}
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	rows := table.Rows
	if table.IsEmpty() {
		// Guarantee at least one cell so the sheet stays readable
		rows = [][]string{{config.EmptyTableHeader}}
	}

	widths := make(map[int]int)
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
			if n := len([]rune(v)); n > widths[c] {
				widths[c] = n
			}
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}

	return sizeColumns(f, name, widths)
}

// sizeColumns widens each column to fit its longest value, clamped to the
// configured bounds
func sizeColumns(f *excelize.File, sheet string, widths map[int]int) error {
	for col, runes := range widths {
		width := float64(runes) + 2
		if width < config.MinColumnWidth {
			width = config.MinColumnWidth
		}
		if width > config.MaxColumnWidth {
			width = config.MaxColumnWidth
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
	}
	return nil
}
