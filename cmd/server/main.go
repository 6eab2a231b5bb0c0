package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/http"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/persist"
	wssignal "github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/signal"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/stream"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/app"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/config"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/keepalive"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	var rec app.Recorder
	if cfg.PersistURL != "" {
		rec = persist.NewClient(cfg.PersistURL)
	}

	coord := app.NewCoordinator(rec)
	ctl := wssignal.NewController(coord, cfg)
	streamer := stream.NewHandler(stream.NewClient(cfg.FileHostURL, cfg.FileHostToken))

	go keepalive.Run(ctx, cfg.SelfURL)

	r := router.SetupRouter(ctx, cfg, ctl, streamer)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Watch Party server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
