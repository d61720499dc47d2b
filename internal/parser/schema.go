package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"table-combiner/internal/config"
	"table-combiner/internal/models"
)

// ColumnType represents the detected data type for a table column
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeReal
	TypeTimestamp
	TypeBoolean
)

// String returns the string representation of ColumnType
func (ct ColumnType) String() string {
	switch ct {
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// SQLType returns the SQLite column type for the column type
func (ct ColumnType) SQLType() string {
	switch ct {
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	case TypeTimestamp:
		return "DATETIME"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// ColumnSchema represents the schema for a single column
type ColumnSchema struct {
	Name string
	Type ColumnType
}

// TableSchema represents the complete schema for an exported table
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
}

// SplitHeader divides a table into headers and data records for the SQLite
// export. When the first row looks like a header it supplies the column
// names; otherwise column_N names are generated and every row is data.
func SplitHeader(table models.Table) ([]string, [][]string) {
	width := table.ColumnCount()
	if width == 0 {
		return nil, nil
	}

	if len(table.Rows) > 0 && IsHeaderRow(table.Rows[0]) {
		headers := padRow(table.Rows[0], width)
		return headers, table.Rows[1:]
	}

	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i+1)
	}
	return headers, table.Rows
}

// padRow extends a ragged row with empty cells up to width
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// DetectSchema analyzes table data to determine an appropriate database
// schema. A sample of the records is examined to infer column types.
func DetectSchema(headers []string, records [][]string, tableName string) (*TableSchema, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("no columns found")
	}

	schema := &TableSchema{
		Name:    tableName,
		Columns: make([]ColumnSchema, len(headers)),
	}

	sampleSize := len(records)
	if sampleSize > config.SchemaDetectionSampleSize {
		sampleSize = config.SchemaDetectionSampleSize
	}

	for i, header := range headers {
		schema.Columns[i] = ColumnSchema{
			Name: SanitizeSQLName(header),
			Type: detectColumnType(records, i, sampleSize),
		}
	}

	return schema, nil
}

// detectColumnType examines sampled values in one column and returns the
// dominant type when it clears the confidence threshold
func detectColumnType(records [][]string, columnIndex, sampleSize int) ColumnType {
	typeVotes := make(map[ColumnType]int)
	totalValues := 0

	for i := 0; i < sampleSize && i < len(records); i++ {
		if columnIndex >= len(records[i]) {
			continue
		}
		value := strings.TrimSpace(records[i][columnIndex])
		if value == "" {
			continue
		}
		typeVotes[inferValueType(value)]++
		totalValues++
	}

	if totalValues == 0 {
		return TypeText
	}

	maxVotes := 0
	commonType := TypeText
	for cType, count := range typeVotes {
		if count > maxVotes {
			maxVotes = count
			commonType = cType
		}
	}

	if float64(maxVotes)/float64(totalValues) >= config.TypeInferenceThreshold {
		return commonType
	}
	return TypeText
}

// inferValueType returns the most specific type a single value could represent
func inferValueType(value string) ColumnType {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if isUnixTimestamp(n) {
			return TypeTimestamp
		}
		return TypeInteger
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return TypeReal
	}

	if isBoolean(value) {
		return TypeBoolean
	}

	if isTimestampText(value) {
		return TypeTimestamp
	}

	return TypeText
}

// isUnixTimestamp checks whether an integer is plausibly a UNIX timestamp,
// in seconds (1980-2050) or milliseconds
func isUnixTimestamp(n int64) bool {
	if n >= 315532800 && n <= 2524608000 {
		return true
	}
	return n >= 315532800000 && n <= 2524608000000
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// isTimestampText checks non-numeric values against common date formats
func isTimestampText(value string) bool {
	for _, format := range timestampFormats {
		if _, err := time.Parse(format, value); err == nil {
			return true
		}
	}
	return false
}

// isBoolean checks if a value represents a boolean
func isBoolean(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false", "yes", "no", "y", "n":
		return true
	}
	return false
}

// IsHeaderRow reports whether a record appears to be a header row rather
// than data. A row qualifies when more than half of its non-empty cells
// look like column labels.
func IsHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}

	headerLike := 0
	nonEmpty := 0
	for _, field := range record {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		nonEmpty++
		if looksLikeHeader(field) {
			headerLike++
		}
	}

	if nonEmpty == 0 {
		return false
	}
	return float64(headerLike)/float64(nonEmpty) > 0.5
}

// looksLikeHeader determines if a single field looks like a column label
func looksLikeHeader(field string) bool {
	// Data values rule themselves out
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return false
	}
	if isTimestampText(field) {
		return false
	}
	if strings.Contains(field, "@") {
		return false
	}
	if len(field) > 50 {
		return false
	}

	hasLetter := false
	for _, r := range field {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// SanitizeSQLName cleans a header or sheet name into a SQL-safe identifier
func SanitizeSQLName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "_")
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}

	if out == "" {
		return "unnamed"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "t_" + out
	}
	return out
}

// GenerateCreateTableSQL generates the CREATE TABLE statement for the schema
func (ts *TableSchema) GenerateCreateTableSQL() string {
	columns := make([]string, 0, len(ts.Columns)+1)
	columns = append(columns, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, col := range ts.Columns {
		columns = append(columns, fmt.Sprintf("%s %s", col.Name, col.Type.SQLType()))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		ts.Name, strings.Join(columns, ",\n  "))
}
