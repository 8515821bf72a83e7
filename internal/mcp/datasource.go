package mcp

import (
	"context"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	QueryScores(ctx context.Context, userID int, workoutID *uuid.UUID) ([]models.Score, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
