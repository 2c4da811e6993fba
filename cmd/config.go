package cmd

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// DefaultDatabaseURL is used when neither database.url nor an active
// databases entry is configured.
const DefaultDatabaseURL = "sqlite:///./test.db"

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// Connection is a resolved database/sql driver name and DSN.
type Connection struct {
	Name   string
	Driver string
	DSN    string
}

// GetActiveDBConfig returns the currently active database configuration, or
// nil when no databases are configured at all.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}
	if len(configs) == 0 {
		return nil, nil
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// ResolveDatabase picks the connection: database.url, then the active
// databases entry, then DefaultDatabaseURL.
func ResolveDatabase() (*Connection, error) {
	if raw := viper.GetString("database.url"); raw != "" {
		return connectionFromURL("database.url", raw)
	}

	active, err := GetActiveDBConfig()
	if err != nil {
		return nil, err
	}
	if active != nil {
		if active.Driver == "" {
			return connectionFromURL(active.Name, active.DSN)
		}
		return &Connection{Name: active.Name, Driver: active.Driver, DSN: active.DSN}, nil
	}

	return connectionFromURL("default", DefaultDatabaseURL)
}

func connectionFromURL(name, raw string) (*Connection, error) {
	driver, dsn, err := ParseDatabaseURL(raw)
	if err != nil {
		return nil, err
	}
	return &Connection{Name: name, Driver: driver, DSN: dsn}, nil
}

// ParseDatabaseURL turns a scheme://... database URL into a driver name and
// the DSN that driver expects. A "+driver" suffix on the scheme is ignored.
func ParseDatabaseURL(raw string) (driver, dsn string, err error) {
	idx := strings.Index(raw, "://")
	if idx < 0 {
		return "", "", fmt.Errorf("invalid database url %q: missing scheme", raw)
	}
	scheme := strings.ToLower(raw[:idx])
	if plus := strings.IndexByte(scheme, '+'); plus >= 0 {
		scheme = scheme[:plus]
	}
	rest := raw[idx+len("://"):]

	switch scheme {
	case "sqlite":
		// sqlite:///relative.db, sqlite:////abs/path.db, sqlite:// (memory)
		if rest == "" {
			return "sqlite", ":memory:", nil
		}
		return "sqlite", strings.TrimPrefix(rest, "/"), nil
	case "postgres", "postgresql":
		return "postgres", "postgres://" + rest, nil
	case "mysql", "mariadb":
		dsn, err := mysqlDSN(rest)
		if err != nil {
			return "", "", fmt.Errorf("invalid database url %q: %w", raw, err)
		}
		return "mysql", dsn, nil
	case "mssql", "sqlserver":
		return "sqlserver", sqlserverDSN(rest), nil
	case "oracle":
		return "oracle", "oracle://" + rest, nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

func mysqlDSN(rest string) (string, error) {
	u, err := url.Parse("mysql://" + rest)
	if err != nil {
		return "", err
	}

	cfg := mysql.NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")

	for k, v := range u.Query() {
		if len(v) == 0 {
			continue
		}
		if cfg.Params == nil {
			cfg.Params = map[string]string{}
		}
		cfg.Params[k] = v[0]
	}
	return cfg.FormatDSN(), nil
}

// sqlserverDSN moves a /database path into the query, where the driver
// looks for it.
func sqlserverDSN(rest string) string {
	u, err := url.Parse("sqlserver://" + rest)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "sqlserver://" + rest
	}
	q := u.Query()
	if q.Get("database") == "" {
		q.Set("database", strings.TrimPrefix(u.Path, "/"))
	}
	u.Path = ""
	u.RawQuery = q.Encode()
	return u.String()
}
