package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/wodboard/internal/corpus"
	"github.com/claude/wodboard/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, opts search.Options, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("WODBoard", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("WODBoard workout catalog server. Search benchmark workouts, grade recorded scores against their benchmark bands, and inspect movement frequency and performance trends. Scores are scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, search: opts, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolSearchWorkouts, Handler: h.searchWorkouts},
		server.ServerTool{Tool: toolGetWorkoutLevel, Handler: h.getWorkoutLevel},
		server.ServerTool{Tool: toolGetMovementFrequency, Handler: h.getMovementFrequency},
		server.ServerTool{Tool: toolGetPerformanceTrend, Handler: h.getPerformanceTrend},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	search search.Options
	log    *slog.Logger
}

// corpus snapshots the catalog for one call.
func (h *handlers) corpus(ctx context.Context) (*corpus.Corpus, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	return corpus.New(workouts), nil
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"wodboard://catalog",
	"Workout Catalog",
	mcp.WithResourceDescription("Every catalog workout with its category, difficulty, benchmark bands and derived movements"),
	mcp.WithMIMEType("application/json"),
)
