package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"item-store/internal/api"
	"item-store/internal/engine"
	"item-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the seed file if the table is empty, then serve the item API",
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "HTTP listen address (default :8000)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, src, err := prepareStore(ctx)
	if err != nil {
		return err
	}
	if err := service.CheckSchema(st.Table()); err != nil {
		return err
	}

	locker, closeLocker := newLocker(st.Table().Name)
	defer closeLocker()

	res, err := engine.Bootstrap(ctx, st, src, engine.LoadOptions{
		Strict: viper.GetBool("seed.strict"),
		Locker: locker,
	})
	if err != nil {
		return fmt.Errorf("seed load failed after %d rows: %w", res.Inserted, err)
	}

	metrics := api.NewMetrics()
	metrics.SeededRows.Set(float64(res.Inserted))

	health := newHealthHandler(st)

	if viper.GetString("log.level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(service.NewItemService(st), metrics, zap.L())

	servers := []*http.Server{
		{Addr: viper.GetString("server.addr"), Handler: router},
		{Addr: viper.GetString("health.addr"), Handler: health},
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			zap.S().Infof("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listener %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		zap.S().Infof("Received shutdown signal")
	case serveErr = <-errCh:
		zap.S().Errorf("Server failed: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Warnf("Shutdown of %s: %v", srv.Addr, err)
		}
	}

	zap.S().Infof("Successful shutdown")
	return serveErr
}
