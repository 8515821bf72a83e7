// Package corpus is a read-only snapshot of the workout catalog with each
// workout's movement set derived once.
package corpus

import (
	"github.com/claude/wodboard/internal/csvimport"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/movement"
	"github.com/claude/wodboard/internal/search"
	"github.com/google/uuid"
)

// Corpus is safe for concurrent reads. It is never mutated after New.
type Corpus struct {
	workouts []models.Workout
	sets     []movement.Set
	byID     map[uuid.UUID]int
	docs     []search.Document
}

// New snapshots workouts, keeping their order.
func New(workouts []models.Workout) *Corpus {
	c := &Corpus{
		workouts: workouts,
		sets:     make([]movement.Set, len(workouts)),
		byID:     make(map[uuid.UUID]int, len(workouts)),
		docs:     make([]search.Document, len(workouts)),
	}
	for i, w := range workouts {
		set := movement.ExtractWorkout(w)
		c.sets[i] = set
		c.byID[w.ID] = i
		c.docs[i] = search.Document{
			ID:          w.ID.String(),
			Name:        w.Name,
			Description: w.Description,
			Tags:        w.Tags,
			Movements:   set.Names(),
		}
	}
	return c
}

// Len is the number of workouts.
func (c *Corpus) Len() int { return len(c.workouts) }

// Workouts returns the workouts in catalog order.
func (c *Corpus) Workouts() []models.Workout { return c.workouts }

// Documents returns the searchable view of every workout.
func (c *Corpus) Documents() []search.Document { return c.docs }

// Workout looks a workout up by ID.
func (c *Corpus) Workout(id uuid.UUID) (models.Workout, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Workout{}, false
	}
	return c.workouts[i], true
}

// Movements returns the derived movement set of a workout.
func (c *Corpus) Movements(id uuid.UUID) movement.Set {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return c.sets[i]
}

// Frequency aggregates movement frequency per category from the cached sets.
func (c *Corpus) Frequency() movement.Frequency {
	return movement.AggregateSets(c.workouts, c.sets)
}

// Index builds the name index used to resolve CSV rows.
func (c *Corpus) Index() csvimport.Index {
	return csvimport.NewIndex(c.workouts)
}

// Search runs a query and maps the results back to workouts.
func (c *Corpus) Search(query string, opts search.Options) []Hit {
	results := search.Search(c.docs, query, opts)
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			continue
		}
		w, ok := c.Workout(id)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Workout: w, Result: r})
	}
	return hits
}

// MatchAll filters workouts with the literal AND matcher.
func (c *Corpus) MatchAll(query string) []models.Workout {
	var out []models.Workout
	for i, d := range c.docs {
		if search.MatchesAllTerms(d, query) {
			out = append(out, c.workouts[i])
		}
	}
	return out
}

// Hit pairs a search result with its workout.
type Hit struct {
	Workout models.Workout
	Result  search.Result
}
