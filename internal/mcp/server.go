// Package mcp exposes the workout data over the Model Context Protocol so an
// assistant can answer questions about sessions, history and plans. All
// tools are read-only; session transitions stay behind the HTTP API.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/plans"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/settings"
	"github.com/meltforce/gymlog/internal/timer"
)

// New creates an MCP server with all tools and resources registered.
func New(sessions *session.Manager, historyRepo *history.Repository, planRepo *plans.Repository, settingsRepo *settings.Repository, clock timer.Clock, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("gymlog workout tracker. Query the active training session, completed workout history and weekly plans. All data is local to this device."),
	)

	h := &handlers{
		sessions: sessions,
		history:  historyRepo,
		plans:    planRepo,
		settings: settingsRepo,
		clock:    clock,
		log:      log,
	}

	s.AddTools(
		server.ServerTool{Tool: toolGetActiveSession, Handler: h.getActiveSession},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetPlans, Handler: h.getPlans},
		server.ServerTool{Tool: toolGetSettings, Handler: h.getSettings},
	)

	s.AddResources(
		server.ServerResource{Resource: resActiveSession, Handler: h.activeSession},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	sessions *session.Manager
	history  *history.Repository
	plans    *plans.Repository
	settings *settings.Repository
	clock    timer.Clock
	log      *slog.Logger
}
