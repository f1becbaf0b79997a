package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goktugdsert/Flight-Project/internal/config"
	httpapi "github.com/goktugdsert/Flight-Project/internal/http"
	"github.com/goktugdsert/Flight-Project/internal/roster"
	"github.com/goktugdsert/Flight-Project/internal/rosterapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "flight-roster").Logger()

	var svc rosterapi.Service
	if cfg.RosterAPIURL == "" {
		svc = rosterapi.NewMock()
		logger.Info().Msg("using mock roster service")
	} else {
		svc = rosterapi.NewClient(cfg.RosterAPIURL, cfg.RequestTimeout)
	}

	rec := roster.NewReconciler(svc, logger)
	router := httpapi.Router(cfg, svc, rec, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
