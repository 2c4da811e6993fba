package dialect

import (
	"context"
	"database/sql"
)

// Execer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect abstracts database-specific operations.
type Dialect interface {
	Name() string

	// DDL
	CreateTableQuery(table, pk string, cols []string) string
	GetColumnsQuery() string // 단일 바인드 파라미터: 테이블명

	// Query Generation
	InsertQuery(table string, cols []string) string
	TruncateQuery(table string) string
	Placeholder(index int) string // Returns ?, $1, @p1, etc.
	QuoteIdent(name string) string

	// InsertReturningID runs an insert built by InsertQuery and reports the
	// key the engine assigned to the new row.
	InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error)

	// Helpers
	GetLimitRowQuery(query string, limit int) string
}
