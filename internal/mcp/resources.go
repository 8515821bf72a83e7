package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/wodboard/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

type catalogEntry struct {
	models.Workout
	Movements []string `json:"movements"`
}

func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c, err := h.corpus(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]catalogEntry, 0, c.Len())
	for _, w := range c.Workouts() {
		entries = append(entries, catalogEntry{Workout: w, Movements: c.Movements(w.ID).Names()})
	}

	data, err := json.Marshal(entries)
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
