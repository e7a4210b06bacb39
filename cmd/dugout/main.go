package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadedpez/dugout/internal/api"
	"github.com/fadedpez/dugout/internal/app"
	"github.com/fadedpez/dugout/internal/config"
	"github.com/fadedpez/dugout/internal/discord"
	"github.com/fadedpez/dugout/internal/logging"
	pkgdiscord "github.com/fadedpez/dugout/pkg/discord"
	"github.com/fadedpez/dugout/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := logging.Default
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Error opening record store: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Error closing record store: %v", err)
		}
	}()

	// A nil *ElasticsearchRepository must not reach the interface
	var search scheduler.Reindexer
	if a.Search != nil {
		search = a.Search
	}
	maintenance := scheduler.NewMaintenanceScheduler(a.History, search, scheduler.MaintenanceConfig{
		SnapshotMaxAge:  cfg.SnapshotMaxAge,
		ReindexInterval: cfg.ESSyncInterval,
	})
	maintenance.SetLogger(logger)
	maintenance.Start(ctx)
	defer maintenance.Stop()

	var bot *pkgdiscord.Bot
	if cfg.BotEnabled {
		session, err := discord.NewSession(cfg.Token)
		if err != nil {
			log.Fatalf("Error creating Discord session: %v", err)
		}
		bot = pkgdiscord.NewBot(session, pkgdiscord.Options{
			AppID:           cfg.AppID,
			GuildID:         cfg.GuildID,
			CleanupCommands: cfg.IsDevelopment(),
		}, a.Records, a.Statistics)
		bot.SetLogger(logger)

		if err := bot.Start(); err != nil {
			log.Fatalf("Error starting bot: %v", err)
		}
		logger.Info("Bot is running")
	}

	var httpServer *http.Server
	serverErr := make(chan error, 1)
	if cfg.APIEnabled {
		server := api.NewServer(a.Records, a.Statistics, api.Options{
			CORSOrigins: cfg.CORSOrigins,
			CacheTTL:    cfg.CacheTTL,
		})
		server.SetLogger(logger)

		httpServer = &http.Server{
			Addr:              cfg.APIAddr,
			Handler:           server.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("API listening on %s", cfg.APIAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	if bot == nil && httpServer == nil {
		logger.Warn("Neither the bot nor the API is enabled; only maintenance tasks will run")
	}
	logger.Info("dugout is running. Press Ctrl+C to exit")

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error("API server failed: %v", err)
	}

	logger.Info("Shutting down...")
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error stopping API server: %v", err)
		}
		cancel()
	}
	if bot != nil {
		if err := bot.Stop(); err != nil {
			logger.Error("Error stopping bot: %v", err)
		}
	}
}
