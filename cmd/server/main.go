package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hongminglow/catalog-api/internal/config"
	"github.com/hongminglow/catalog-api/internal/logging"
	"github.com/hongminglow/catalog-api/internal/server"
	"github.com/hongminglow/catalog-api/internal/storage/docstore"
	"github.com/hongminglow/catalog-api/internal/storage/factory"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New("catalog-api", cfg.LogLevel, cfg.LogFormat)
	log.Logger = logger
	if envErr != nil {
		logger.Debug().Msg("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	backend, err := factory.NewBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("init storage")
	}
	store := docstore.New(backend)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("close storage")
		}
	}()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddress()).
			Str("driver", cfg.StorageDriver).
			Msg("catalog api listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
