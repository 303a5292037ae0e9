package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meltforce/gymlog/internal/alerts"
	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/plans"
	"github.com/meltforce/gymlog/internal/server"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/settings"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/meltforce/gymlog/internal/timer"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("gymlog starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("record store opened", "path", cfg.Storage.Path)

	clock := timer.RealClock{}

	var notifier session.Notifier = session.NopNotifier{}
	if cfg.Alerts.Enabled {
		notifier = alerts.NewScheduler(clock, log)
	}

	sessions := session.NewManager(store, clock, notifier, log)
	planRepo := plans.NewRepository(store, clock, log)
	historyRepo := history.NewRepository(store, clock, log)
	settingsRepo := settings.NewRepository(store, log)

	srv := server.New(sessions, planRepo, historyRepo, settingsRepo, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
