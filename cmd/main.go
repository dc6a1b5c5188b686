package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "ads-scheduler/internal/adapter/http"
	"ads-scheduler/internal/adapter/platform"
	"ads-scheduler/internal/adapter/postgres"
	"ads-scheduler/internal/adapter/redisbus"
	"ads-scheduler/internal/adapter/usecase"
	"ads-scheduler/internal/config"
	"ads-scheduler/internal/db"
	"ads-scheduler/internal/executor"
	"ads-scheduler/internal/store"
)

// main is the entry point of the scheduling service. It loads
// configuration, optionally runs database migrations, initializes the
// database pool, the Redis notifier and the platform client, then starts
// the HTTP server and the executor. On receiving a termination signal it
// gracefully shuts everything down.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stdout)

	// Optionally run migrations if configured.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	rdb, err := db.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Error("redis connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer rdb.Close()

	repo := postgres.NewScheduleRepository(pool)
	notifier := redisbus.NewNotifier(rdb)
	platformClient := platform.NewClient(cfg.Platform)
	svc := usecase.NewScheduleUseCase(repo, platformClient, notifier,
		cfg.Schedule.MinAutoBudget, cfg.Schedule.AutoItemDelay)

	// The schedule store caches active rows for the executor; any writer,
	// including other instances, invalidates it through the notifier.
	scheduleStore := store.New(repo)
	stopSub, err := notifier.Subscribe(ctx, usecase.TableSchedules, scheduleStore.Invalidate)
	if err != nil {
		logger.Error("notifier subscribe error", slog.Any("error", err))
		os.Exit(1)
	}
	defer stopSub()

	if cfg.Executor.Enabled {
		exec := executor.New(scheduleStore, repo, platformClient, logger,
			cfg.Executor.Interval, cfg.Executor.ItemDelay)
		go exec.Run(ctx)
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    cfg.HTTP.ListenAddr(),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
