package cmd

import (
	"context"
	"strings"

	"item-store/internal/dialect"
	"item-store/internal/schema"
	"item-store/internal/seedlock"
	"item-store/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// prepareStore reads the seed file, derives the table from its header and
// makes sure the table exists.
func prepareStore(ctx context.Context) (*store.Store, *schema.Source, error) {
	src, err := schema.ReadSource(viper.GetString("seed.file"))
	if err != nil {
		return nil, nil, err
	}

	table, err := schema.Derive(viper.GetString("seed.table"), src.Header)
	if err != nil {
		return nil, nil, err
	}
	zap.S().Infof("Derived table %s: %s", table.Name, strings.Join(table.ColumnNames(), ", "))

	d, err := dialect.GetDialect(Conn.Driver)
	if err != nil {
		return nil, nil, err
	}
	zap.S().Debugf("Using dialect %s", d.Name())

	st := store.New(DB, d, table)
	if err := st.EnsureTable(ctx); err != nil {
		return nil, nil, err
	}
	return st, src, nil
}

// newLocker returns the Redis seed lock when seed.lock.redis_addr is set, and
// a no-op locker otherwise. The returned close func is always safe to call.
func newLocker(table string) (seedlock.Locker, func()) {
	addr := viper.GetString("seed.lock.redis_addr")
	if addr == "" {
		return seedlock.Noop{}, func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	zap.S().Infof("Seed lock on redis %s", addr)
	return seedlock.NewRedis(client, seedlock.Key(table), viper.GetDuration("seed.lock.ttl")),
		func() { client.Close() }
}
