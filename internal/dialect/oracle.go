package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Oracle Driver ("oracle")
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) CreateTableQuery(table, pk string, cols []string) string {
	defs := []string{fmt.Sprintf("%s NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY", d.QuoteIdent(pk))}
	for _, c := range cols {
		defs = append(defs, d.QuoteIdent(c)+" VARCHAR2(4000)")
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))

	// ORA-00955: name is already used by an existing object
	return fmt.Sprintf(`BEGIN
    EXECUTE IMMEDIATE '%s';
EXCEPTION
    WHEN OTHERS THEN
        IF SQLCODE != -955 THEN
            RAISE;
        END IF;
END;`, strings.ReplaceAll(ddl, "'", "''"))
}

func (d *OracleDialect) GetColumnsQuery() string {
	// Quoted identifiers keep their case, so the table name is matched verbatim.
	return `SELECT COLUMN_NAME FROM USER_TAB_COLUMNS WHERE TABLE_NAME = :1 ORDER BY COLUMN_ID`
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(d, table, cols)
}

// The generated key is bound as an output parameter after the values.
func (d *OracleDialect) InsertReturningID(ctx context.Context, ex Execer, table, pk string, cols []string, args []any) (int64, error) {
	query := fmt.Sprintf("%s RETURNING %s INTO %s",
		d.InsertQuery(table, cols), d.QuoteIdent(pk), d.Placeholder(len(cols)))

	var id int64
	bound := append(append([]any{}, args...), sql.Out{Dest: &id})
	if _, err := ex.ExecContext(ctx, query, bound...); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *OracleDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return quoteWith(`"`, `"`, name)
}

func (d *OracleDialect) GetLimitRowQuery(query string, limit int) string {
	return fmt.Sprintf("SELECT * FROM (%s) WHERE ROWNUM <= %d", query, limit)
}
