package dialect

import (
	"context"
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) CreateTableQuery(table, pk string, cols []string) string {
	defs := []string{fmt.Sprintf("%s SERIAL PRIMARY KEY", d.QuoteIdent(pk))}
	for _, c := range cols {
		defs = append(defs, d.QuoteIdent(c)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))
}

func (d *PostgresDialect) GetColumnsQuery() string {
	return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position`
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(d, table, cols)
}

// lib/pq does not implement LastInsertId; the key comes back through RETURNING.
func (d *PostgresDialect) InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error) {
	query := fmt.Sprintf("%s RETURNING %s", d.InsertQuery(table, cols), d.QuoteIdent(pk))
	var id int64
	if err := ex.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *PostgresDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return quoteWith(`"`, `"`, name)
}

func (d *PostgresDialect) GetLimitRowQuery(query string, limit int) string {
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}
