package movement

import (
	"regexp"
	"sort"
	"strings"

	"github.com/claude/wodboard/internal/models"
)

var (
	// candidateRe matches runs of words starting with a capital letter:
	// "Thrusters", "Pull-Ups", "Hang Power Clean".
	candidateRe = regexp.MustCompile(`[A-Z][a-zA-Z\s-]+`)

	// parentheticalRe matches load or scaling annotations: "(95/65 lb)".
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

	// trailingUnitRe matches a trailing quantity such as "95 lb" or "400 meters".
	trailingUnitRe = regexp.MustCompile(`(?i)\s*\d+(?:[./]\d+)*\s*(?:lbs?|kgs?|pood|in|inch|inches|m|meters?|metres?)\s*$`)
)

const trailingPunct = ".,;:!?-–/"

// stopwords are tokens that never name a movement on their own.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true,
	"for": true, "from": true, "in": true, "of": true, "on": true, "or": true,
	"the": true, "then": true, "to": true, "with": true, "each": true, "every": true,
	"amrap": true, "emom": true, "rft": true, "tabata": true, "chipper": true,
	"time": true, "for time": true, "cap": true, "time cap": true,
	"round": true, "rounds": true, "rep": true, "reps": true, "set": true, "sets": true,
	"min": true, "mins": true, "minute": true, "minutes": true, "sec": true, "seconds": true,
	"max": true, "rest": true, "score": true, "total": true, "buy": true, "out": true,
	"rx": true, "scaled": true, "men": true, "women": true, "male": true, "female": true,
	"ladder": true, "interval": true, "intervals": true, "alternating": true,
	"complete": true, "completed": true, "as many": true, "as possible": true,
}

// introWords mark a sentence fragment rather than a movement when they lead a
// phrase: "If completed...", "Rest between...", "Post time...".
var introWords = map[string]bool{
	"if": true, "rest": true, "then": true, "complete": true, "perform": true,
	"post": true, "scale": true, "score": true, "note": true, "start": true,
	"begin": true, "after": true, "before": true, "between": true, "partner": true,
	"compare": true, "use": true, "record": true, "when": true, "while": true,
	"try": true, "every": true, "each": true, "on": true, "in": true, "with": true,
	"for": true, "as": true, "at": true, "this": true, "that": true, "athletes": true,
	"men": true, "women": true, "time": true, "buy": true, "cash": true,
}

// Set is a collection of canonical movement names, each tagged with how it
// was resolved.
type Set map[string]Kind

// Names returns the movement names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the set contains name.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// ExtractWorkout returns the movements mentioned in a workout's description.
func ExtractWorkout(w models.Workout) Set {
	return Extract(w.Description)
}

// Extract scans a free-text description for movement-like phrases and
// resolves each through Normalize. Repeated mentions collapse into one entry.
func Extract(description string) Set {
	set := Set{}
	for _, line := range strings.Split(description, "\n") {
		for _, candidate := range candidateRe.FindAllString(line, -1) {
			phrase := cleanPhrase(candidate)
			if rejectPhrase(phrase) {
				continue
			}
			c, ok := Normalize(phrase)
			if !ok {
				continue
			}
			if _, seen := set[c.Name]; !seen {
				set[c.Name] = c.Kind
			}
		}
	}
	return set
}

// cleanPhrase strips annotations, trailing quantities and punctuation.
func cleanPhrase(s string) string {
	s = parentheticalRe.ReplaceAllString(s, " ")
	for {
		stripped := trailingUnitRe.ReplaceAllString(s, "")
		stripped = strings.TrimRight(strings.TrimSpace(stripped), trailingPunct)
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.Join(strings.Fields(s), " ")
}

func rejectPhrase(phrase string) bool {
	if len(phrase) <= 2 {
		return true
	}
	lower := strings.ToLower(phrase)
	if stopwords[lower] {
		return true
	}
	tokens := strings.Fields(lower)
	if introWords[tokens[0]] {
		return true
	}
	for _, tok := range tokens {
		if !stopwords[tok] {
			return false
		}
	}
	return true
}
