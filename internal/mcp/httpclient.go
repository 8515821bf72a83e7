package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the WODBoard REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/catalog", nil)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode catalog: %w", err)
	}
	return workouts, nil
}

// QueryScores ignores userID: the server scopes scores to the caller's
// tailnet identity.
func (c *HTTPClient) QueryScores(ctx context.Context, _ int, workoutID *uuid.UUID) ([]models.Score, error) {
	params := url.Values{}
	if workoutID != nil {
		params.Set("workout_id", workoutID.String())
	}

	body, err := c.get(ctx, "/api/v1/scores", params)
	if err != nil {
		return nil, err
	}

	var scores []models.Score
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("httpclient: decode scores: %w", err)
	}
	return scores, nil
}
