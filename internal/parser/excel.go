package parser

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"table-combiner/internal/models"
)

// ReadWorkbook reads every sheet of an .xlsx/.xlsm workbook into a table.
// Each table keeps the original sheet name so multi-sheet workbooks survive
// consolidation with their names intact; callers rename single-sheet
// workbooks after their source file.
func ReadWorkbook(path string) ([]models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	var tables []models.Table

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		tables = append(tables, models.Table{
			SourceFile: base,
			SheetName:  sheet,
			Rows:       rows,
		})
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	return tables, nil
}
