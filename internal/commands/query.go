package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"table-combiner/internal/config"
	"table-combiner/internal/database"
)

// NewQueryCommand creates the 'query' subcommand for running a read-only
// SQL query against an exported database
// Usage: table-combiner query --db tables.db --sql "SELECT COUNT(*) FROM orders"
func NewQueryCommand() *cobra.Command {
	var dbFile string
	var sqlQuery string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a read-only SQL query against an exported database",
		Long: `Execute one SQL query against a database produced by the export command
and print the results as an aligned table.

Only read-only statements (SELECT, WITH, EXPLAIN) are accepted; anything
that could modify data or schema is rejected.

Example:
  table-combiner query --db reports.db --sql "SELECT customer, SUM(amount) FROM orders GROUP BY customer"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCommand(dbFile, sqlQuery)
		},
	}

	cmd.Flags().StringVarP(&dbFile, "db", "d", config.DefaultDatabaseFile, config.DatabaseFileDescription)
	cmd.Flags().StringVarP(&sqlQuery, "sql", "s", "", "SQL query to execute (required)")
	cmd.MarkFlagRequired("sql")

	return cmd
}

// runQueryCommand validates and executes the query
func runQueryCommand(dbFile, sqlQuery string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s\nrun 'export' first", dbFile)
	}

	if err := database.ValidateReadOnlyQuery(sqlQuery); err != nil {
		return fmt.Errorf("query validation failed: %w", err)
	}

	db, err := database.Initialize(dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	columns, rows, err := database.ExecuteQuery(db, sqlQuery)
	if err != nil {
		return err
	}

	printResults(columns, rows)
	return nil
}

// printResults renders query results as an aligned text table
func printResults(columns []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	var header strings.Builder
	var rule strings.Builder
	for i, c := range columns {
		if i > 0 {
			header.WriteString(" | ")
			rule.WriteString("-+-")
		}
		header.WriteString(fmt.Sprintf("%-*s", widths[i], c))
		rule.WriteString(strings.Repeat("-", widths[i]))
	}
	fmt.Println(header.String())
	fmt.Println(rule.String())

	for _, row := range rows {
		var line strings.Builder
		for i := range columns {
			if i > 0 {
				line.WriteString(" | ")
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			line.WriteString(fmt.Sprintf("%-*s", widths[i], v))
		}
		fmt.Println(line.String())
	}

	fmt.Printf("\n(%d rows)\n", len(rows))
}
