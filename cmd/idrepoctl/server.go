package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
	"github.com/doodlesbykumbi/idrepo/pkg/config"
	"github.com/doodlesbykumbi/idrepo/pkg/db"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/server/endpoints"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the idrepo admin server",
	Long: `Run the idrepo admin server.

The server requires the DATABASE_URL environment variable. By default,
database migrations are run on startup; use --no-migrate to skip. Databases
other than PostgreSQL are auto-migrated from the models instead.

While running, the server reaps expired batches every batch_reap_interval
seconds and reloads idrepo.yml when it changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate && usesMigrations(cfg) {
			logger.Log.Info("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		repos, err := openRepositories(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}
		if !noMigrate && !usesMigrations(cfg) {
			if err := db.AutoMigrate(repos.DB()); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := repos.SyncRegistry(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to load connector registry:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(repos, host, port, cfg.Timeout())
		endpoints.RegisterAll(s)

		intervals := make(chan time.Duration, 1)
		go reapBatches(ctx, repos, cfg.ReapInterval(), intervals)
		go func() {
			err := config.Watch(ctx, func(c *config.IdrepoConfig) {
				logger.SetLevel(c.LogLevel)
				select {
				case intervals <- c.ReapInterval():
				default:
				}
			})
			if err != nil {
				logger.Log.Warn("config watch disabled", zap.Error(err))
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()
			_ = s.Shutdown(shutdownCtx)
		}()

		logger.Log.Info("running server", zap.String("addr", s.Addr()))
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

// reapBatches removes expired batches every interval until ctx is done. A
// zero interval disables reaping until a new interval arrives.
func reapBatches(ctx context.Context, repos *storegorm.Repositories, interval time.Duration, intervals <-chan time.Duration) {
	var tick <-chan time.Time
	var ticker *time.Ticker
	reset := func(d time.Duration) {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		if d > 0 {
			ticker = time.NewTicker(d)
			tick = ticker.C
		}
	}
	reset(interval)
	defer reset(0)

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-intervals:
			logger.Log.Info("batch reap interval changed", zap.Duration("interval", d))
			reset(d)
		case <-tick:
			n, err := repos.Batches.DeleteExpired(ctx)
			if err != nil {
				logger.Log.Error("reaping expired batches", zap.Error(err))
				continue
			}
			if n > 0 {
				audit.Log(audit.ReapEvent{ClientIP: "scheduler", Deleted: n})
			}
		}
	}
}
