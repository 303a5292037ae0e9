package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/timer"
)

// --- Tool definitions ---

var toolGetActiveSession = mcp.NewTool("get_active_session",
	mcp.WithDescription("Get the currently active workout session, if any, including its running duration and exercises logged so far."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Get a page of completed workouts, most recent first."),
	mcp.WithNumber("offset", mcp.Description("Number of workouts to skip. Defaults to 0.")),
	mcp.WithNumber("limit", mcp.Description("Page size, capped at 100. Defaults to 20.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a single completed workout by id, with all exercises and sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id")),
)

var toolGetPlans = mcp.NewTool("get_plans",
	mcp.WithDescription("Get the workout plans filed under a weekday."),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of week, 0 (Sunday) through 6 (Saturday)")),
)

var toolGetSettings = mcp.NewTool("get_settings",
	mcp.WithDescription("Get the user's preferences (theme, notifications)."),
)

// --- Resource definitions ---

var resActiveSession = mcp.NewResource(
	"gymlog://active_session",
	"Active Session",
	mcp.WithResourceDescription("The in-progress or paused workout session, with current duration"),
	mcp.WithMIMEType("application/json"),
)

// --- Tool handlers ---

func (h *handlers) getActiveSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.activeSessionSummary(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	offset := req.GetInt("offset", 0)
	limit := req.GetInt("limit", history.DefaultPageSize)

	batch := h.history.FetchBatch(ctx, offset, limit)
	result, err := mcp.NewToolResultJSON(batch)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	workout, ok := h.history.ByID(ctx, id)
	if !ok {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := req.RequireInt("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}

	dayPlans, err := h.plans.ByDay(ctx, day)
	if err != nil {
		h.log.Error("mcp get_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(dayPlans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.settings.Get(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) activeSession(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.activeSessionSummary(ctx))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) activeSessionSummary(ctx context.Context) map[string]any {
	workout, ok := h.sessions.Active(ctx)
	if !ok {
		return map[string]any{"active": false}
	}

	duration := timer.CurrentDuration(workout, h.clock.Now())
	return map[string]any{
		"active":           true,
		"workout":          workout,
		"paused":           workout.Paused(),
		"duration_seconds": duration,
		"duration":         timer.FormatTimer(duration),
	}
}
