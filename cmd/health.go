package cmd

import (
	"context"
	"time"

	"item-store/internal/store"

	"github.com/heptiolabs/healthcheck"
)

// Each open keep-alive connection costs a goroutine, so the limit sits well
// above the expected connection count.
const maxGoroutines = 10000

// newHealthHandler serves /live and /ready for the health listener.
func newHealthHandler(st *store.Store) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))
	health.AddReadinessCheck("database", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return st.Ping(ctx)
	})
	return health
}
