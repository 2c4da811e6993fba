package dialect

import (
	"context"
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) CreateTableQuery(table, pk string, cols []string) string {
	defs := []string{fmt.Sprintf("%s INT NOT NULL AUTO_INCREMENT PRIMARY KEY", d.QuoteIdent(pk))}
	for _, c := range cols {
		defs = append(defs, d.QuoteIdent(c)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))
}

func (d *MysqlDialect) GetColumnsQuery() string {
	return `SELECT COLUMN_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

// Plain INSERT, never INSERT IGNORE: a failed row must surface as an error.
func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(d, table, cols)
}

func (d *MysqlDialect) InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error) {
	return lastInsertID(ctx, d, ex, table, cols, args)
}

func (d *MysqlDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return quoteWith("`", "`", name)
}

func (d *MysqlDialect) GetLimitRowQuery(query string, limit int) string {
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}
