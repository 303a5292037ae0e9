package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/mcp"
	"github.com/meltforce/gymlog/internal/plans"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/settings"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/meltforce/gymlog/internal/timer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	clock := timer.RealClock{}
	sessions := session.NewManager(store, clock, session.NopNotifier{}, log)
	planRepo := plans.NewRepository(store, clock, log)
	historyRepo := history.NewRepository(store, clock, log)
	settingsRepo := settings.NewRepository(store, log)

	srv := mcp.New(sessions, historyRepo, planRepo, settingsRepo, clock, Version, log)

	log.Info("gymlog mcp server starting", "version", Version, "transport", "stdio")
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
