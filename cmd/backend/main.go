package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"svctopo/internal/api"
	"svctopo/internal/config"
	"svctopo/internal/engine"
	"svctopo/internal/scheduler"
	"svctopo/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Logging.Level),
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("starting svctopo backend",
		slog.String("name", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.Int("port", cfg.Server.Port),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, cfg.Database.GetDNS(), logger.With("component", "storage"))
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	rdb := redis.NewClient(cfg.Redis.GetRedisOptions())
	cached := storage.NewLatestCache(store, rdb, logger.With("component", "latestcache"))
	defer cached.Close()

	schedCfg := scheduler.Config{
		TickInterval:   time.Duration(cfg.Engine.TickSec) * time.Second,
		MaxConcurrent:  cfg.Engine.MaxConcurrent,
		ProbeHardLimit: 60 * time.Second,
	}
	eng := engine.New(cached, schedCfg, cfg.Engine.HubInboxCap, logger.With("component", "engine"))
	eng.Start(context.Background())

	srv := api.New(api.Config{Port: cfg.Server.Port, Mode: cfg.Server.Mode}, cached, cached, eng, []byte(cfg.Security.AgentTokenSecret), logger.With("component", "api"))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	eng.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
