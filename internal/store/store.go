// Package store is the only code that touches the derived table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"item-store/internal/dialect"
	"item-store/internal/schema"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("row not found")

// Row is one record of the derived table. Fields holds every derived column,
// NULLs read back as empty text.
type Row struct {
	ID     int64
	Fields map[string]string
}

type Store struct {
	db      *sql.DB
	dialect dialect.Dialect
	table   *schema.Table
}

func New(db *sql.DB, d dialect.Dialect, table *schema.Table) *Store {
	return &Store{db: db, dialect: d, table: table}
}

func (s *Store) Table() *schema.Table { return s.table }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureTable creates the table when it is missing. An existing table must
// already carry every derived column; it is never altered.
func (s *Store) EnsureTable(ctx context.Context) error {
	cols := s.table.ColumnNames()
	ddl := s.dialect.CreateTableQuery(s.table.Name, schema.PrimaryKey, cols)

	return s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", s.table.Name, err)
		}

		existing, err := s.existingColumns(ctx, conn)
		if err != nil {
			return err
		}
		for _, c := range append([]string{schema.PrimaryKey}, cols...) {
			if !existing[c] {
				return fmt.Errorf("table %s exists but has no column %q", s.table.Name, c)
			}
		}
		zap.S().Debugf("Table %s ready with columns %v", s.table.Name, cols)
		return nil
	})
}

func (s *Store) existingColumns(ctx context.Context, conn *sql.Conn) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, s.dialect.GetColumnsQuery(), s.table.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return found, nil
}

// HasRows reports whether at least one row exists.
func (s *Store) HasRows(ctx context.Context) (bool, error) {
	query := dialect.AnyRowQuery(s.dialect, s.table.Name, schema.PrimaryKey)

	var has bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var id int64
		err := conn.QueryRowContext(ctx, query).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("failed to probe table %s: %w", s.table.Name, err)
		}
		has = true
		return nil
	})
	return has, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.QueryRowContext(ctx, dialect.CountQuery(s.dialect, s.table.Name)).Scan(&n); err != nil {
			return fmt.Errorf("failed to count rows: %w", err)
		}
		return nil
	})
	return n, err
}

// values lays fields out in column order; absent columns become empty text
// and keys that are not columns are ignored.
func (s *Store) values(fields map[string]string) []any {
	args := make([]any, len(s.table.Columns))
	for i, c := range s.table.Columns {
		args[i] = fields[c.Name]
	}
	return args
}

// Insert adds a row and returns the key the engine assigned to it.
func (s *Store) Insert(ctx context.Context, fields map[string]string) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		id, err = s.dialect.InsertReturningID(ctx, conn, s.table.Name, schema.PrimaryKey, s.table.ColumnNames(), s.values(fields))
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", s.table.Name, err)
		}
		return nil
	})
	return id, err
}

// Get returns ErrNotFound when no row has this key.
func (s *Store) Get(ctx context.Context, id int64) (Row, error) {
	var row Row
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		row, err = s.get(ctx, conn, id)
		return err
	})
	return row, err
}

func (s *Store) get(ctx context.Context, ex dialect.Execer, id int64) (Row, error) {
	query := dialect.SelectByIDQuery(s.dialect, s.table.Name, schema.PrimaryKey, s.table.ColumnNames())

	vals := make([]sql.NullString, len(s.table.Columns))
	dest := make([]any, 0, len(vals)+1)
	row := Row{Fields: make(map[string]string, len(vals))}
	dest = append(dest, &row.ID)
	for i := range vals {
		dest = append(dest, &vals[i])
	}

	err := ex.QueryRowContext(ctx, query, id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, ErrNotFound
	}
	if err != nil {
		return Row{}, fmt.Errorf("failed to select %s %d: %w", s.table.Name, id, err)
	}

	for i, c := range s.table.Columns {
		row.Fields[c.Name] = vals[i].String
	}
	return row, nil
}

// Replace overwrites every column of an existing row with one UPDATE and
// returns the new state. A missing row is reported as ErrNotFound and
// nothing is written.
func (s *Store) Replace(ctx context.Context, id int64, fields map[string]string) (Row, error) {
	var row Row
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}

		query := dialect.UpdateByIDQuery(s.dialect, s.table.Name, schema.PrimaryKey, s.table.ColumnNames())
		args := append(s.values(fields), id)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update %s %d: %w", s.table.Name, id, err)
		}

		var err error
		row, err = s.get(ctx, tx, id)
		return err
	})
	return row, err
}

// Delete removes the row, or reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, dialect.DeleteByIDQuery(s.dialect, s.table.Name, schema.PrimaryKey), id)
		if err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", s.table.Name, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Truncate removes every row.
func (s *Store) Truncate(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, s.dialect.TruncateQuery(s.table.Name)); err != nil {
			return fmt.Errorf("failed to clean %s: %w", s.table.Name, err)
		}
		return nil
	})
}
