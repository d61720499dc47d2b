// Package database stores consolidated tables in SQLite and runs read-only
// queries against them
package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"table-combiner/internal/parser"
)

// DB interface defines the database operations used by the commands,
// keeping them testable against fakes
type DB interface {
	Close() error
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Begin() (*sql.Tx, error)
}

type sqliteDB struct {
	*sql.DB
}

// Initialize opens (and creates if missing) the SQLite database at dbPath
func Initialize(dbPath string) (DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &sqliteDB{sqlDB}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// CreateTable creates the table described by schema. When replace is set,
// an existing table of the same name is dropped first; otherwise existing
// data is kept and rows are appended.
func CreateTable(db DB, schema *parser.TableSchema, replace bool) error {
	if replace {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", schema.Name)); err != nil {
			return fmt.Errorf("failed to drop existing table %s: %w", schema.Name, err)
		}
	}
	if _, err := db.Exec(schema.GenerateCreateTableSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.Name, err)
	}
	return nil
}

// InsertRows bulk inserts records into the schema's table inside one
// transaction. Ragged records are padded with NULLs; cells beyond the
// schema's width are dropped.
func InsertRows(db DB, schema *parser.TableSchema, records [][]string) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	cols := make([]string, len(schema.Columns))
	marks := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		cols[i] = col.Name
		marks[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, record := range records {
		args := make([]interface{}, len(schema.Columns))
		for i := range args {
			if i < len(record) && record[i] != "" {
				args[i] = record[i]
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return inserted, fmt.Errorf("failed to insert row: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit insert: %w", err)
	}
	return inserted, nil
}

// ExecuteQuery runs a query and returns the column names in result order
// along with every row rendered as text. NULLs come back as empty strings.
func ExecuteQuery(db DB, query string) ([]string, [][]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results [][]string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			switch value := v.(type) {
			case nil:
				row[i] = ""
			case []byte:
				row[i] = string(value)
			default:
				row[i] = fmt.Sprint(value)
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return columns, results, nil
}

// writeKeywordPattern matches keywords that modify data or schema anywhere
// in a statement, not just at its start
var writeKeywordPattern = regexp.MustCompile(`\b(insert|update|delete|drop|create|alter|truncate|replace|merge|upsert|attach|detach|vacuum|reindex|begin|commit|rollback|savepoint)\b`)

// ValidateReadOnlyQuery rejects statements that could modify data or
// schema. Only SELECT, WITH, and EXPLAIN statements pass, and the whole
// statement is scanned for write keywords: a read-only prefix alone is
// not enough, since SQLite accepts forms like WITH ... INSERT.
func ValidateReadOnlyQuery(query string) error {
	normalized := strings.ToLower(stripSQLComments(query))
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return fmt.Errorf("empty query")
	}

	if strings.Contains(strings.TrimSuffix(normalized, ";"), ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}

	allowed := false
	for _, prefix := range []string{"select", "with", "explain"} {
		if strings.HasPrefix(normalized, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("only read-only queries (SELECT, WITH, EXPLAIN) are allowed")
	}

	if keyword := writeKeywordPattern.FindString(normalized); keyword != "" {
		return fmt.Errorf("forbidden keyword '%s' detected, only read-only queries are allowed", strings.ToUpper(keyword))
	}
	return nil
}

// stripSQLComments removes -- line comments and /* */ block comments
func stripSQLComments(query string) string {
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '-' && i+1 < len(query) && query[i+1] == '-' {
			for i < len(query) && query[i] != '\n' {
				i++
			}
			continue
		}
		if query[i] == '/' && i+1 < len(query) && query[i+1] == '*' {
			i += 2
			for i+1 < len(query) && !(query[i] == '*' && query[i+1] == '/') {
				i++
			}
			i++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
