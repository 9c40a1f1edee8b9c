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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/krm/catalog-api/internal/api"
	"github.com/krm/catalog-api/internal/infrastructure/db/mongo"
	"github.com/krm/catalog-api/internal/infrastructure/db/postgres"
	"github.com/krm/catalog-api/internal/infrastructure/db/redis"
	"github.com/krm/catalog-api/internal/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server. Backing stores are only dialled when configuration
selects them: MongoDB for USER_STORE=mongo, PostgreSQL for HOME_STORE=postgres and
Redis for AUTH_THROTTLE_ENABLED=true.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps := api.Deps{
			Config:   cfg,
			Logger:   log,
			Registry: prometheus.NewRegistry(),
		}

		if cfg.Users.Backend == config.BackendMongo {
			client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
			if err != nil {
				return fmt.Errorf("failed to connect to mongodb: %w", err)
			}
			defer func() {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(dctx)
			}()
			if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to create user indexes: %w", err)
			}
			deps.Mongo = db
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		}

		if cfg.Homes.Backend == config.BackendPostgres {
			gdb, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
			if err != nil {
				return fmt.Errorf("failed to connect to postgres: %w", err)
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := postgres.NewHomeRepository(gdb).Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate homes: %w", err)
			}
			deps.Postgres = gdb
			log.Info().Msg("connected to postgres")
		}

		if cfg.Auth.Throttle.Enabled {
			rdb, err := redis.Connect(ctx, redis.Config{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer rdb.Close()
			deps.Redis = rdb
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		}

		e, err := api.NewRouter(deps)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      e,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().
				Str("addr", srv.Addr).
				Str("policy", cfg.Auth.Policy).
				Str("env", cfg.Env).
				Msg("starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrors <- err
			}
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

			sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(sctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Info().Msg("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
