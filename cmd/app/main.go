package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/database/memory"
	"storefront/internal/database/psql"
	"storefront/internal/database/redisdb"
	"storefront/pkg/config"
	"storefront/pkg/lib/logger"
	"storefront/pkg/lib/logger/sl"
)

type storage interface {
	app.Storage
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env, os.Stdout)
	if err != nil {
		panic(err)
	}

	store, err := setupStorage(cfg, log)
	if err != nil {
		panic(err)
	}

	application := app.New(
		log,
		cfg.HTTP.Port,
		store,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	log.Info("Stopping application")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := application.Stop(ctx); err != nil {
		log.Error("Failed to stop application", sl.Err(err))
	}

	log.Info("Closing storage")
	if err := store.Close(); err != nil {
		log.Error("Failed to close storage", sl.Err(err))
	}
}

func setupStorage(cfg *config.Config, log *slog.Logger) (storage, error) {
	log.Info("Using storage", "driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return psql.New(log, cfg.ConnectionString())
	case config.DriverRedis:
		return redisdb.New(log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return memory.New(log), nil
	}
}
