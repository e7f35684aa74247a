package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mauv0809/sdg-dashboard/internal/config"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/handlers"
	"github.com/mauv0809/sdg-dashboard/internal/logging"
	"github.com/mauv0809/sdg-dashboard/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.EnvFile == "" {
		log.Info().Msg("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect and load the whole collection before serving
	loadCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	src, err := store.Open(loadCtx, store.Options{
		URL:        cfg.DatabaseURL,
		Database:   cfg.DatabaseName,
		Collection: cfg.Collection,
		Migrate:    cfg.Migrate,
	})
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("could not connect to the document store")
	}
	defer func() {
		closeCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := src.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing document store")
		}
	}()
	log.Info().Str("source", src.Name()).Msg("connected to document store")

	res, err := store.Load(loadCtx, src)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load dataset")
	}
	if res.Dataset.Len() == 0 {
		log.Warn().Str("source", src.Name()).Msg("collection is empty, pages will show no data")
	}
	data := dataset.NewHolder(res.Dataset)

	// Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())

	// Static files
	e.Static("/assets", cfg.AssetsDir)

	handlers.New(data).Register(e)

	// Admin routes for dataset maintenance
	if cfg.AdminEnabled {
		handlers.NewAdminHandler(src, data).Register(e.Group("/admin"))
		log.Info().Msg("admin endpoints registered")
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
