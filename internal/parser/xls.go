package parser

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yamitzky/xlrd-go/xlrd"

	"table-combiner/internal/models"
)

// ReadLegacyWorkbook reads every sheet of a BIFF-format .xls file into a
// table. Cell values are rendered to text: numbers in minimal form, date
// cells according to the workbook's date system, booleans as TRUE/FALSE.
func ReadLegacyWorkbook(path string) ([]models.Table, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		FormattingInfo: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}
	defer book.ReleaseResources()

	base := filepath.Base(path)
	names := book.SheetNames()
	var tables []models.Table

	for i, name := range names {
		sheet, err := book.SheetByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		rows := make([][]string, 0, sheet.NRows)
		for r := 0; r < sheet.NRows; r++ {
			row := make([]string, sheet.NCols)
			for c := 0; c < sheet.NCols; c++ {
				row[c] = renderCell(sheet.CellType(r, c), sheet.CellValue(r, c), book.Datemode)
			}
			rows = append(rows, row)
		}

		tables = append(tables, models.Table{
			SourceFile: base,
			SheetName:  name,
			Rows:       rows,
		})
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	return tables, nil
}

// renderCell converts one BIFF cell to its text form
func renderCell(ctype int, value interface{}, datemode int) string {
	switch ctype {
	case xlrd.XL_CELL_TEXT:
		return cellString(value)
	case xlrd.XL_CELL_NUMBER:
		if f, ok := cellFloat(value); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return cellString(value)
	case xlrd.XL_CELL_DATE:
		if f, ok := cellFloat(value); ok {
			return formatSerialDate(f, datemode)
		}
		return cellString(value)
	case xlrd.XL_CELL_BOOLEAN:
		if f, ok := cellFloat(value); ok && f != 0 {
			return "TRUE"
		}
		if b, ok := value.(bool); ok && b {
			return "TRUE"
		}
		return "FALSE"
	case xlrd.XL_CELL_ERROR:
		return "#ERROR"
	default: // XL_CELL_EMPTY, XL_CELL_BLANK
		return ""
	}
}

func cellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func cellFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// formatSerialDate converts an Excel serial date to text. Datemode selects
// the 1900 or 1904 epoch. Serials below one carry no date part and render
// as time of day; whole serials render as a date without a time part.
func formatSerialDate(serial float64, datemode int) string {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	if datemode == 1 {
		epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	days := math.Floor(serial)
	frac := serial - days
	seconds := int(math.Round(frac * 86400))
	ts := epoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)

	if serial < 1 {
		return ts.Format("15:04:05")
	}
	if seconds == 0 {
		return ts.Format("2006-01-02")
	}
	return ts.Format("2006-01-02 15:04:05")
}
