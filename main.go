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
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/config"
	"github.com/semafind/closepairs/httpapi"
	"github.com/semafind/closepairs/session"
)

// ---------------------------

func setupLogging(cfg config.ConfigMap) {
	// UNIX Time is faster and smaller than most timestamps
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.PrettyLogOutput {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	// ---------------------------
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Interface("config", cfg).Msg("Loaded config")
	}
}

// ---------------------------

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogging(cfg)
	log.Info().Str("version", "0.1.0").Msg("Starting closepairs")
	// ---------------------------
	if err := catalog.Validate(catalog.All()); err != nil {
		log.Fatal().Err(err).Msg("Unit vector catalog is invalid")
	}
	// ---------------------------
	manager := session.NewManager(cfg.Session, cfg.Viewport)
	ctx, stopPrune := context.WithCancel(context.Background())
	go manager.Run(ctx)
	// ---------------------------
	httpServer, metricsServer := httpapi.RunHTTPServer(cfg.HttpApi, manager)
	// ---------------------------
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	stopPrune()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, server := range []*http.Server{httpServer, metricsServer} {
		if server == nil {
			continue
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Str("addr", server.Addr).Msg("Server forced to shut")
		}
	}
	log.Info().Int("sessions", manager.Len()).Msg("Shutdown complete")
}
