package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/ptr"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the client decodes the catalog endpoint,
// benchmark bands included.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/catalog": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, testWorkouts())
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	workouts, err := client.ListWorkouts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(workouts))
	}
	if workouts[0].Benchmarks == nil || *workouts[0].Benchmarks.Elite.Max != 180 {
		t.Errorf("fran benchmarks = %+v, want elite max 180", workouts[0].Benchmarks)
	}
}

// TestQueryScores verifies the workout filter is sent as a query parameter
// and omitted when nil.
func TestQueryScores(t *testing.T) {
	var gotFilter []string
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/scores": func(w http.ResponseWriter, r *http.Request) {
			gotFilter = append(gotFilter, r.URL.Query().Get("workout_id"))
			writeTestJSON(t, w, []models.Score{{
				ID:          uuid.New(),
				WorkoutID:   franID,
				TimeSeconds: ptr.To(200),
				IsRx:        true,
				ScoreDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	scores, err := client.QueryScores(context.Background(), 1, &franID)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || *scores[0].TimeSeconds != 200 {
		t.Errorf("scores = %+v, want one 200s score", scores)
	}
	if _, err := client.QueryScores(context.Background(), 1, nil); err != nil {
		t.Fatal(err)
	}

	if len(gotFilter) != 2 || gotFilter[0] != franID.String() || gotFilter[1] != "" {
		t.Errorf("workout_id params = %q", gotFilter)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/catalog": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.ListWorkouts(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "returned 500") {
		t.Errorf("error = %v, want status in message", err)
	}
}
