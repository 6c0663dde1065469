package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"f1countdown/api"
	"f1countdown/broadcaster"
	"f1countdown/config"
	"f1countdown/season"
	"f1countdown/web"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	listenAddr = flag.String("addr", "", "address to listen on, overrides config and PORT")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	setupLogging(cfg)

	fetcher := season.NewFetcher(cfg.ScheduleURL, cfg.FetchTimeout)
	cache := season.NewCache(fetcher, cfg.CacheDuration)
	b := broadcaster.NewBroadcaster()

	var watcher *season.Watcher
	if cfg.PushInterval > 0 {
		watcher = season.NewWatcher(cache, cfg.PushInterval, b.Broadcast)
		watcher.Start()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewServer(cache, b, cfg.SiteURL, web.Static()).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("schedule", fetcher.URL()).Msg("starting F1 countdown server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if watcher != nil {
		watcher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("failed to shut down HTTP server")
	}
	log.Info().Msg("F1 countdown server stopped")
}

func setupLogging(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
