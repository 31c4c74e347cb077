package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/gaabane252/Notes-app/internal/config"
	"github.com/gaabane252/Notes-app/internal/db"
	"github.com/gaabane252/Notes-app/internal/middleware"
	"github.com/gaabane252/Notes-app/internal/notes"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	ctx := context.Background()

	var store notes.Store
	switch cfg.StoreBackend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			logger.Fatal().Msg("DATABASE_URL is required for the postgres backend")
		}
		pool, err := db.Open(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect postgres")
		}
		defer pool.Close()

		pg, err := notes.NewPGStore(ctx, pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("init postgres store")
		}
		defer pg.Close()
		store = pg
	default:
		fs, err := notes.NewFileStore(cfg.StorePath, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.StorePath).Msg("init file store")
		}
		store = fs
	}

	handler := notes.NewHandlers(store, logger).Routes()
	handler = middleware.RateLimit(cfg.RateRPS, cfg.RateBurst)(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("backend", cfg.StoreBackend).
		Msg("notes API listening")
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
