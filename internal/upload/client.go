// Package upload sends CSV exports to a remote WODBoard server.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/csvimport"
)

// ImportResult mirrors the server's response to a committed import.
type ImportResult struct {
	ImportLogID    int64             `json:"import_log_id"`
	Schema         string            `json:"schema"`
	Summary        csvimport.Summary `json:"summary"`
	ScoresInserted int64             `json:"scores_inserted"`
}

// Client sends data to the WODBoard server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the WODBoard server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// UploadCSV POSTs a CSV file to the server's import endpoint.
// Retries up to 3 times with exponential backoff on network errors and 5xx
// responses. A 4xx response is returned at once.
func (c *Client) UploadCSV(ctx context.Context, path, source string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	params := url.Values{}
	params.Set("source", source)
	endpoint := c.serverURL + "/api/v1/import/csv?" + params.Encode()

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var result ImportResult
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding import result: %w", err)
			}
			return &result, nil
		case resp.StatusCode < http.StatusInternalServerError:
			return nil, fmt.Errorf("import rejected (status %d): %s", resp.StatusCode, body)
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
