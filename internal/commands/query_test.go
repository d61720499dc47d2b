package commands

import (
	"path/filepath"
	"testing"

	"table-combiner/internal/database"
	"table-combiner/internal/parser"
)

// TestNewQueryCommand tests the query command creation and flags
func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()

	if cmd == nil {
		t.Fatal("NewQueryCommand() returned nil")
	}
	if cmd.Use != "query" {
		t.Errorf("Expected command name 'query', got '%s'", cmd.Use)
	}

	for _, flagName := range []string{"db", "sql"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' not found", flagName)
		}
	}
}

// TestRunQueryCommand tests querying a prepared database
func TestRunQueryCommand(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "q.db")
	db, err := database.Initialize(dbFile)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	schema := &parser.TableSchema{
		Name:    "items",
		Columns: []parser.ColumnSchema{{Name: "name", Type: parser.TypeText}},
	}
	if err := database.CreateTable(db, schema, true); err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	if _, err := database.InsertRows(db, schema, [][]string{{"widget"}}); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	db.Close()

	if err := runQueryCommand(dbFile, "SELECT name FROM items"); err != nil {
		t.Errorf("runQueryCommand() error = %v", err)
	}
}

// TestRunQueryCommandRejectsWrites tests the read-only guard
func TestRunQueryCommandRejectsWrites(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "q.db")
	db, err := database.Initialize(dbFile)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	db.Close()

	if err := runQueryCommand(dbFile, "DROP TABLE items"); err == nil {
		t.Error("runQueryCommand() expected error for write statement, got nil")
	}
}

// TestRunQueryCommandMissingDatabase tests the missing-file error path
func TestRunQueryCommandMissingDatabase(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.db")
	if err := runQueryCommand(missing, "SELECT 1"); err == nil {
		t.Error("runQueryCommand() expected error for missing database, got nil")
	}
}
