package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nulzo/virtual-router-api/cmd"
	cachememory "github.com/nulzo/virtual-router-api/internal/adapters/cache/memory"
	cacheredis "github.com/nulzo/virtual-router-api/internal/adapters/cache/redis"
	"github.com/nulzo/virtual-router-api/internal/audit"
	"github.com/nulzo/virtual-router-api/internal/config"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"github.com/nulzo/virtual-router-api/internal/core/services"
	"github.com/nulzo/virtual-router-api/internal/platform/logger"
	"github.com/nulzo/virtual-router-api/internal/platform/otel"
	"github.com/nulzo/virtual-router-api/internal/quota"
	"github.com/nulzo/virtual-router-api/internal/server"
	"github.com/nulzo/virtual-router-api/internal/server/validator"
	"github.com/nulzo/virtual-router-api/internal/store"
	"github.com/nulzo/virtual-router-api/internal/store/file"
	"github.com/nulzo/virtual-router-api/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer logger.Sync()
	log := logger.Get()

	go cmd.CheckForUpdates()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer("virtual-router-api", cmd.AppVersion, log, os.Stdout)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	validator.InitValidator()

	configStore := file.NewConfigStore(cfg.State.Path)

	var cache ports.RouteStateCache
	if cfg.Redis.Enabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cache = cacheredis.NewRouteStateCache(client, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
		log.Info("Route-state cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		cache = cachememory.NewRouteStateCache()
	}

	var repo store.Repository
	var sink ports.ResolutionSink
	var ingestor audit.Ingestor
	if cfg.Audit.Enabled {
		repo, err = sqlite.NewSQLiteStorage(cfg.Audit.DSN)
		if err != nil {
			log.Fatal("Failed to open audit database", zap.Error(err))
		}
		defer repo.Close()

		ingestor = audit.NewIngestor(log, repo)
		ingestor.Start(ctx)
		sink = ingestor
	}

	service := services.NewFallbackService(log, configStore, cache, sink)

	table := quota.NewTable(cfg.Quota.DefaultAvailable, cfg.Quota.Backends)

	srv := server.New(cfg, log, service, table, repo, cmd.AppVersion)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting virtual router",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.String("version", cmd.AppVersion),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	if ingestor != nil {
		ingestor.Stop()
	}
}
