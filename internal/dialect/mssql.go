package dialect

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?
// especially when prepared statements are involved or simple Exec.

func (d *MSSQLDialect) Name() string { return "sqlserver" }

func (d *MSSQLDialect) CreateTableQuery(table, pk string, cols []string) string {
	defs := []string{fmt.Sprintf("%s INT IDENTITY(1,1) PRIMARY KEY", d.QuoteIdent(pk))}
	for _, c := range cols {
		defs = append(defs, d.QuoteIdent(c)+" NVARCHAR(MAX)")
	}
	// No CREATE TABLE IF NOT EXISTS in T-SQL
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
		strings.ReplaceAll(table, "'", "''"), d.QuoteIdent(table), strings.Join(defs, ", "))
}

func (d *MSSQLDialect) GetColumnsQuery() string {
	return `SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = @p1 ORDER BY ORDINAL_POSITION`
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(d, table, cols)
}

// OUTPUT INSERTED sits between the column list and VALUES.
func (d *MSSQLDialect) InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error) {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	query := fmt.Sprintf("INSERT INTO %s (%s) OUTPUT INSERTED.%s VALUES (%s)",
		d.QuoteIdent(table), strings.Join(QuoteAll(d, cols), ", "), d.QuoteIdent(pk), vals)

	var id int64
	if err := ex.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *MSSQLDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return quoteWith("[", "]", name)
}

func (d *MSSQLDialect) GetLimitRowQuery(query string, limit int) string {
	// Simple T-SQL TOP injection
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return strings.Replace(query, "SELECT", fmt.Sprintf("SELECT TOP %d", limit), 1)
	}
	return query
}
