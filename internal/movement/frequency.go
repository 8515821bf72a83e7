package movement

import (
	"github.com/claude/wodboard/internal/models"
)

// UncategorizedLabel groups workouts that carry no category.
const UncategorizedLabel = "Uncategorized"

// FrequencyEntry counts the workouts in which a movement appears.
type FrequencyEntry struct {
	Count        int      `json:"count"`
	WorkoutNames []string `json:"workout_names"`
}

// Frequency is category -> movement -> entry.
type Frequency map[string]map[string]*FrequencyEntry

// AggregateFrequency counts, per category, how many workouts mention each
// movement. A workout contributes at most once per movement no matter how
// often the movement is repeated in its description.
func AggregateFrequency(workouts []models.Workout) Frequency {
	sets := make([]Set, len(workouts))
	for i, w := range workouts {
		sets[i] = ExtractWorkout(w)
	}
	return AggregateSets(workouts, sets)
}

// AggregateSets is AggregateFrequency for callers that already hold the
// movement set of each workout; sets[i] belongs to workouts[i].
func AggregateSets(workouts []models.Workout, sets []Set) Frequency {
	freq := Frequency{}
	for i, w := range workouts {
		category := w.Category
		if category == "" {
			category = UncategorizedLabel
		}
		byMovement, ok := freq[category]
		if !ok {
			byMovement = map[string]*FrequencyEntry{}
			freq[category] = byMovement
		}
		for _, name := range sets[i].Names() {
			entry, ok := byMovement[name]
			if !ok {
				entry = &FrequencyEntry{}
				byMovement[name] = entry
			}
			entry.Count++
			entry.WorkoutNames = append(entry.WorkoutNames, w.Name)
		}
	}
	return freq
}
