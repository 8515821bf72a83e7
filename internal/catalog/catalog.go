// Package catalog loads workout definitions from TOML files.
//
// A catalog file holds one [[workout]] table per workout:
//
//	[[workout]]
//	name = "Fran"
//	description = "21-15-9 Thrusters (95/65 lb), Pull-Ups"
//	category = "Girls"
//	difficulty = "Hard"
//	tags = ["girls", "couplet"]
//
//	[workout.benchmarks]
//	type = "time"
//	elite = { max = 180 }
//	advanced = { max = 240 }
//	intermediate = { max = 300 }
//	beginner = { min = 300 }
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/claude/wodboard/internal/models"
)

// namespace seeds the deterministic IDs of workouts that do not set one.
var namespace = uuid.MustParse("6f1c8a52-4d0e-4b8e-9a43-2f6c1e7d9b10")

//
// For TOML parsing only
//

type workoutTOML struct {
	ID          string             `toml:"id"`
	Name        string             `toml:"name"`
	Description string             `toml:"description"`
	Category    string             `toml:"category"`
	Difficulty  string             `toml:"difficulty"`
	Tags        []string           `toml:"tags"`
	Benchmarks  *models.Benchmarks `toml:"benchmarks"`
}

type catalogTOML struct {
	Workouts []workoutTOML `toml:"workout"`
}

// Load reads and parses a catalog file.
func Load(path string) ([]models.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	workouts, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return workouts, nil
}

// Parse decodes catalog TOML. Unknown keys, missing names, duplicate names
// and unknown benchmark types are errors.
func Parse(data string) ([]models.Workout, error) {
	var raw catalogTOML
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	seen := make(map[string]bool, len(raw.Workouts))
	workouts := make([]models.Workout, 0, len(raw.Workouts))
	for i, wt := range raw.Workouts {
		name := strings.TrimSpace(wt.Name)
		if name == "" {
			return nil, fmt.Errorf("workout %d: name is required", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("workout %q: duplicate name", name)
		}
		seen[name] = true

		id, err := workoutID(wt.ID, name)
		if err != nil {
			return nil, fmt.Errorf("workout %q: %w", name, err)
		}
		if wt.Benchmarks != nil && !wt.Benchmarks.Type.Valid() {
			return nil, fmt.Errorf("workout %q: unknown benchmark type %q", name, wt.Benchmarks.Type)
		}

		workouts = append(workouts, models.Workout{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(wt.Description),
			Tags:        wt.Tags,
			Category:    wt.Category,
			Difficulty:  wt.Difficulty,
			Benchmarks:  wt.Benchmarks,
		})
	}
	return workouts, nil
}

// workoutID parses an explicit ID or derives a stable one from the name,
// so reloading a catalog keeps the IDs scores refer to.
func workoutID(explicit, name string) (uuid.UUID, error) {
	if explicit != "" {
		id, err := uuid.Parse(explicit)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid id: %w", err)
		}
		return id, nil
	}
	return uuid.NewSHA1(namespace, []byte(name)), nil
}
