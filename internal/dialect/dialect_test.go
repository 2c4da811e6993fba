package dialect_test

import (
	"testing"

	"item-store/internal/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"name", "email", "phone", "note"}

func TestGetDialect(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres", "mysql", "sqlserver", "mssql", "oracle"} {
		d, err := dialect.GetDialect(driver)
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}

	_, err := dialect.GetDialect("db2")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	cases := map[string]string{
		"sqlite":    "?, ?, ?",
		"mysql":     "?, ?, ?",
		"postgres":  "$1, $2, $3",
		"sqlserver": "@p1, @p2, @p3",
		"oracle":    ":1, :2, :3",
	}
	for driver, want := range cases {
		d, err := dialect.GetDialect(driver)
		require.NoError(t, err)
		assert.Equal(t, want, dialect.GeneratePlaceholders(3, d.Placeholder), driver)
	}
}

func TestCreateTableQuery(t *testing.T) {
	sqlite, _ := dialect.GetDialect("sqlite")
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "items" ("id" INTEGER PRIMARY KEY AUTOINCREMENT, "name" TEXT, "email" TEXT, "phone" TEXT, "note" TEXT)`,
		sqlite.CreateTableQuery("items", "id", cols))

	pg, _ := dialect.GetDialect("postgres")
	assert.Contains(t, pg.CreateTableQuery("items", "id", cols), `"id" SERIAL PRIMARY KEY`)

	my, _ := dialect.GetDialect("mysql")
	assert.Contains(t, my.CreateTableQuery("items", "id", cols), "`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY")

	ms, _ := dialect.GetDialect("sqlserver")
	q := ms.CreateTableQuery("items", "id", cols)
	assert.Contains(t, q, "IF OBJECT_ID(N'items', N'U') IS NULL")
	assert.Contains(t, q, "[note] NVARCHAR(MAX)")

	ora, _ := dialect.GetDialect("oracle")
	q = ora.CreateTableQuery("items", "id", cols)
	assert.Contains(t, q, "SQLCODE != -955")
	assert.Contains(t, q, `"id" NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY`)
}

func TestCRUDQueries(t *testing.T) {
	pg, _ := dialect.GetDialect("postgres")

	assert.Equal(t,
		`INSERT INTO "items" ("name", "email") VALUES ($1, $2)`,
		pg.InsertQuery("items", []string{"name", "email"}))
	assert.Equal(t,
		`SELECT "id", "name", "email" FROM "items" WHERE "id" = $1`,
		dialect.SelectByIDQuery(pg, "items", "id", []string{"name", "email"}))
	assert.Equal(t,
		`UPDATE "items" SET "name" = $1, "email" = $2 WHERE "id" = $3`,
		dialect.UpdateByIDQuery(pg, "items", "id", []string{"name", "email"}))
	assert.Equal(t,
		`DELETE FROM "items" WHERE "id" = $1`,
		dialect.DeleteByIDQuery(pg, "items", "id"))
	assert.Equal(t, `SELECT COUNT(*) FROM "items"`, dialect.CountQuery(pg, "items"))
}

func TestAnyRowQuery(t *testing.T) {
	cases := map[string]string{
		"sqlite":    `SELECT "id" FROM "items" LIMIT 1`,
		"mysql":     "SELECT `id` FROM `items` LIMIT 1",
		"sqlserver": `SELECT TOP 1 [id] FROM [items]`,
		"oracle":    `SELECT * FROM (SELECT "id" FROM "items") WHERE ROWNUM <= 1`,
	}
	for driver, want := range cases {
		d, _ := dialect.GetDialect(driver)
		assert.Equal(t, want, dialect.AnyRowQuery(d, "items", "id"), driver)
	}
}

func TestQuoteIdent_EscapesQuotes(t *testing.T) {
	pg, _ := dialect.GetDialect("postgres")
	my, _ := dialect.GetDialect("mysql")
	ms, _ := dialect.GetDialect("sqlserver")

	assert.Equal(t, `"a""b"`, pg.QuoteIdent(`a"b`))
	assert.Equal(t, "`a``b`", my.QuoteIdent("a`b"))
	assert.Equal(t, "[a]]b]", ms.QuoteIdent("a]b"))
	assert.Equal(t, `"first name"`, pg.QuoteIdent("first name"))
}

func TestTruncateQuery(t *testing.T) {
	sqlite, _ := dialect.GetDialect("sqlite")
	pg, _ := dialect.GetDialect("postgres")

	assert.Equal(t, `DELETE FROM "items"`, sqlite.TruncateQuery("items"))
	assert.Equal(t, `TRUNCATE TABLE "items"`, pg.TruncateQuery("items"))
}
