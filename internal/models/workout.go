package models

import (
	"github.com/google/uuid"
)

// BenchmarkType names the score dimension a workout is graded on.
type BenchmarkType string

const (
	BenchmarkTime   BenchmarkType = "time"
	BenchmarkReps   BenchmarkType = "reps"
	BenchmarkLoad   BenchmarkType = "load"
	BenchmarkRounds BenchmarkType = "rounds"
)

// Valid reports whether t is one of the four known benchmark types.
func (t BenchmarkType) Valid() bool {
	switch t {
	case BenchmarkTime, BenchmarkReps, BenchmarkLoad, BenchmarkRounds:
		return true
	}
	return false
}

// LowerIsBetter is true for time-based benchmarks.
func (t BenchmarkType) LowerIsBetter() bool {
	return t == BenchmarkTime
}

// Band is one threshold band. A nil bound is open.
type Band struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
}

// Benchmarks holds the four grading bands of a workout.
// For time benchmarks bands are ordered by Max, otherwise by Min.
type Benchmarks struct {
	Type         BenchmarkType `json:"type" yaml:"type" toml:"type"`
	Elite        *Band         `json:"elite,omitempty" yaml:"elite,omitempty" toml:"elite,omitempty"`
	Advanced     *Band         `json:"advanced,omitempty" yaml:"advanced,omitempty" toml:"advanced,omitempty"`
	Intermediate *Band         `json:"intermediate,omitempty" yaml:"intermediate,omitempty" toml:"intermediate,omitempty"`
	Beginner     *Band         `json:"beginner,omitempty" yaml:"beginner,omitempty" toml:"beginner,omitempty"`
}

// Workout is a named WOD from the catalog. Movements are derived from the
// description, never stored.
type Workout struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Category    string      `json:"category"`
	Difficulty  string      `json:"difficulty"`
	Benchmarks  *Benchmarks `json:"benchmarks,omitempty"`
}

// Level is a discrete performance grade.
type Level string

const (
	LevelElite        Level = "elite"
	LevelAdvanced     Level = "advanced"
	LevelIntermediate Level = "intermediate"
	LevelBeginner     Level = "beginner"
)

// Rank maps a level onto the 0-4 scale used for trends and sorting.
func (l Level) Rank() int {
	switch l {
	case LevelElite:
		return 4
	case LevelAdvanced:
		return 3
	case LevelIntermediate:
		return 2
	case LevelBeginner:
		return 1
	}
	return 0
}
