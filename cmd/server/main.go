package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront-service/internal/api/router"
	"storefront-service/internal/cache"
	"storefront-service/internal/config"
	"storefront-service/internal/database"
	"storefront-service/internal/logger"
	"storefront-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	connect := database.NewConnector(cfg.DatabaseURL, cfg.ConnectTimeout)

	var catalog repository.CatalogRepository = repository.NewCatalogRepository(connect)
	orders := repository.NewOrderRepository(connect, database.NewSchemaBootstrapper())

	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb, err = cache.ConnectRedis(context.Background(), cfg, log)
		if err != nil {
			// the cache is optional; serve straight from the database
			log.Warn().Err(err).Msg("redis unavailable, read cache disabled")
		} else {
			catalog = cache.NewCachedCatalogRepository(catalog, rdb, cfg.CacheTTL, log)
			log.Info().Dur("ttl", cfg.CacheTTL).Msg("read cache enabled")
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(cfg, router.Deps{Catalog: catalog, Orders: orders, Log: log}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}

		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
		}

		shutdownCompleted <- struct{}{}
	}()

	log.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	<-shutdownCompleted
	log.Info().Msg("shutdown completed")
}
