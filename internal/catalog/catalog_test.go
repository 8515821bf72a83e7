package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/ptr"
	"github.com/google/go-cmp/cmp"
)

const sample = `
[[workout]]
name = "Fran"
description = "21-15-9 Thrusters (95/65 lb), Pull-Ups"
category = "Girls"
difficulty = "Hard"
tags = ["girls", "couplet"]

[workout.benchmarks]
type = "time"
elite = { max = 180 }
advanced = { max = 240 }
intermediate = { max = 300 }
beginner = { min = 300 }

[[workout]]
id = "0b7e2a4c-3f7d-4a55-9b0e-6f2f5a1c9d21"
name = "Cindy"
description = "AMRAP 20: 5 Pull-Ups, 10 Push-Ups, 15 Air Squats"
category = "Girls"
difficulty = "Medium"
`

// TestParse verifies decoding of workouts, bands and explicit IDs.
func TestParse(t *testing.T) {
	got, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d workouts, want 2", len(got))
	}

	wantBench := &models.Benchmarks{
		Type:         models.BenchmarkTime,
		Elite:        &models.Band{Max: ptr.To(180.0)},
		Advanced:     &models.Band{Max: ptr.To(240.0)},
		Intermediate: &models.Band{Max: ptr.To(300.0)},
		Beginner:     &models.Band{Min: ptr.To(300.0)},
	}
	if diff := cmp.Diff(wantBench, got[0].Benchmarks); diff != "" {
		t.Errorf("benchmarks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"girls", "couplet"}, got[0].Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if got[1].ID.String() != "0b7e2a4c-3f7d-4a55-9b0e-6f2f5a1c9d21" {
		t.Errorf("explicit id = %s", got[1].ID)
	}
	if got[1].Benchmarks != nil {
		t.Errorf("Cindy benchmarks = %+v, want nil", got[1].Benchmarks)
	}
}

// TestParseStableIDs verifies that workouts without an id get the same
// derived ID on every load.
func TestParseStableIDs(t *testing.T) {
	a, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}
	if a[0].ID != b[0].ID {
		t.Errorf("derived IDs differ: %s vs %s", a[0].ID, b[0].ID)
	}
}

// TestParseErrors verifies rejection of malformed catalogs.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "missing name", data: "[[workout]]\ndescription = \"x\"\n", wantErr: "name is required"},
		{name: "duplicate", data: "[[workout]]\nname = \"A\"\n[[workout]]\nname = \"A\"\n", wantErr: "duplicate name"},
		{name: "bad type", data: "[[workout]]\nname = \"A\"\n[workout.benchmarks]\ntype = \"calories\"\n", wantErr: "unknown benchmark type"},
		{name: "unknown key", data: "[[workout]]\nname = \"A\"\nrating = 5\n", wantErr: "unknown keys"},
		{name: "bad id", data: "[[workout]]\nname = \"A\"\nid = \"nope\"\n", wantErr: "invalid id"},
		{name: "syntax", data: "[[workout]\n", wantErr: "invalid TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoad verifies reading a catalog from disk.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[0].Name != "Fran" {
		t.Errorf("first workout = %q, want Fran", got[0].Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}
