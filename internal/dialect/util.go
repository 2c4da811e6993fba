package dialect

import (
	"context"
	"fmt"
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// QuoteAll quotes every name with the dialect's identifier quoting.
func QuoteAll(d Dialect, names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdent(n)
	}
	return quoted
}

// quoteWith doubles any embedded closing quote.
func quoteWith(open, close, name string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

// DefaultInsertQuery builds a plain INSERT with the dialect's placeholders.
func DefaultInsertQuery(d Dialect, table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(QuoteAll(d, cols), ", "), vals)
}

// lastInsertID is the InsertReturningID strategy for drivers that implement
// sql.Result.LastInsertId (sqlite, mysql).
func lastInsertID(ctx context.Context, d Dialect, ex Execer, table string, cols []string, args []any) (int64, error) {
	res, err := ex.ExecContext(ctx, d.InsertQuery(table, cols), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SelectByIDQuery selects pk followed by cols for one row.
func SelectByIDQuery(d Dialect, table, pk string, cols []string) string {
	all := append([]string{pk}, cols...)
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		strings.Join(QuoteAll(d, all), ", "), d.QuoteIdent(table), d.QuoteIdent(pk), d.Placeholder(0))
}

// UpdateByIDQuery sets every col in one statement; the key binds last.
func UpdateByIDQuery(d Dialect, table, pk string, cols []string) string {
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = %s", d.QuoteIdent(c), d.Placeholder(i))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		d.QuoteIdent(table), strings.Join(sets, ", "), d.QuoteIdent(pk), d.Placeholder(len(cols)))
}

func DeleteByIDQuery(d Dialect, table, pk string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", d.QuoteIdent(table), d.QuoteIdent(pk), d.Placeholder(0))
}

func CountQuery(d Dialect, table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

// AnyRowQuery returns at most one key, used for the "is the table empty" check.
func AnyRowQuery(d Dialect, table, pk string) string {
	return d.GetLimitRowQuery(fmt.Sprintf("SELECT %s FROM %s", d.QuoteIdent(pk), d.QuoteIdent(table)), 1)
}
