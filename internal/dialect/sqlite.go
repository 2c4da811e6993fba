package dialect

import (
	"context"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver ("sqlite")
)

type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) CreateTableQuery(table, pk string, cols []string) string {
	defs := []string{fmt.Sprintf("%s INTEGER PRIMARY KEY AUTOINCREMENT", d.QuoteIdent(pk))}
	for _, c := range cols {
		defs = append(defs, d.QuoteIdent(c)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))
}

func (d *SQLiteDialect) GetColumnsQuery() string {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(d, table, cols)
}

func (d *SQLiteDialect) InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error) {
	return lastInsertID(ctx, d, ex, table, cols, args)
}

// SQLite has no TRUNCATE; the sequence row is left alone so keys are never reused.
func (d *SQLiteDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("DELETE FROM %s", d.QuoteIdent(table))
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) QuoteIdent(name string) string {
	return quoteWith(`"`, `"`, name)
}

func (d *SQLiteDialect) GetLimitRowQuery(query string, limit int) string {
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}
