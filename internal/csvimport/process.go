package csvimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/ptr"
	"github.com/google/uuid"
)

// legacyTitleAliases maps legacy titles to catalog names where the two
// systems spell distance workouts differently.
var legacyTitleAliases = map[string]string{
	"1 mile Run": "Run 1600m",
	"2 mile Run": "Run 3200m",
	"5K Run":     "Run 5K",
	"10K Run":    "Run 10K",
}

// ResolveTitle maps a legacy export title to its catalog name. Titles
// without an alias are returned trimmed.
func ResolveTitle(title string) string {
	name := strings.TrimSpace(title)
	if alias, ok := legacyTitleAliases[name]; ok {
		return alias
	}
	return name
}

// Index resolves workout names exactly and case-sensitively.
type Index map[string]models.Workout

// NewIndex builds an Index. When names collide the first workout wins.
func NewIndex(workouts []models.Workout) Index {
	idx := make(Index, len(workouts))
	for _, w := range workouts {
		if _, ok := idx[w.Name]; !ok {
			idx[w.Name] = w
		}
	}
	return idx
}

// Lookup returns the workout with exactly the given name.
func (idx Index) Lookup(name string) (models.Workout, bool) {
	w, ok := idx[name]
	return w, ok
}

// ProposedScore is the score a row would create if imported.
type ProposedScore struct {
	WorkoutID       uuid.UUID `json:"workout_id"`
	TimeSeconds     *int      `json:"time_seconds,omitempty"`
	Reps            *int      `json:"reps,omitempty"`
	Load            *float64  `json:"load,omitempty"`
	RoundsCompleted *int      `json:"rounds_completed,omitempty"`
	PartialReps     *int      `json:"partial_reps,omitempty"`
	IsRx            bool      `json:"is_rx"`
	ScoreDate       time.Time `json:"score_date"`
	Notes           string    `json:"notes,omitempty"`
}

func (p ProposedScore) hasValue() bool {
	return p.TimeSeconds != nil || p.Reps != nil || p.Load != nil ||
		p.RoundsCompleted != nil || p.PartialReps != nil
}

// Score converts the proposal into a score owned by userID.
func (p ProposedScore) Score(userID int) models.Score {
	return models.Score{
		UserID:          userID,
		WorkoutID:       p.WorkoutID,
		TimeSeconds:     p.TimeSeconds,
		Reps:            p.Reps,
		Load:            p.Load,
		RoundsCompleted: p.RoundsCompleted,
		PartialReps:     p.PartialReps,
		IsRx:            p.IsRx,
		ScoreDate:       p.ScoreDate,
		Notes:           p.Notes,
	}
}

// Validation holds the outcome of checking one row. Warnings describe
// values that were ignored without invalidating the row.
type Validation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// ProcessedRow is a row after workout resolution and score synthesis.
// Proposed is set only for valid rows.
type ProcessedRow struct {
	RowNumber      int             `json:"row_number"`
	SourceName     string          `json:"source_name"`
	MatchedWorkout *models.Workout `json:"matched_workout"`
	Proposed       *ProposedScore  `json:"proposed"`
	Validation     Validation      `json:"validation"`
	Selected       bool            `json:"selected"`
}

// Process resolves every row against idx. Invalid rows are kept, with
// their errors, and are not selected. Output order follows input order.
func Process(rows []Row, idx Index) []ProcessedRow {
	out := make([]ProcessedRow, 0, len(rows))
	for _, r := range rows {
		switch row := r.(type) {
		case LegacyRow:
			out = append(out, processLegacy(row, idx))
		case NativeRow:
			out = append(out, processNative(row, idx))
		}
	}
	return out
}

// rowBuilder accumulates the pieces of a ProcessedRow.
type rowBuilder struct {
	row      ProcessedRow
	proposed ProposedScore
	dateOK   bool
	badScore bool
}

func (b *rowBuilder) fail(format string, args ...any) {
	b.row.Validation.Errors = append(b.row.Validation.Errors, fmt.Sprintf(format, args...))
}

func (b *rowBuilder) match(idx Index, name string) {
	w, ok := idx.Lookup(name)
	if !ok {
		b.fail("no workout named %q", name)
		return
	}
	b.row.MatchedWorkout = &w
	b.proposed.WorkoutID = w.ID
}

func (b *rowBuilder) date(t time.Time, err error) {
	if err != nil {
		b.fail("%s", err.Error())
		return
	}
	b.proposed.ScoreDate = t
	b.dateOK = true
}

func (b *rowBuilder) warn(format string, args ...any) {
	b.row.Validation.Warnings = append(b.row.Validation.Warnings, fmt.Sprintf(format, args...))
}

func (b *rowBuilder) scoreError(err error) {
	b.fail("%s", err.Error())
	b.badScore = true
}

func (b *rowBuilder) finish() ProcessedRow {
	hasValue := b.proposed.hasValue()
	if !hasValue && !b.badScore {
		b.fail("no score value")
	}
	valid := b.row.MatchedWorkout != nil && b.dateOK && hasValue && !b.badScore
	b.row.Validation.IsValid = valid
	b.row.Selected = valid
	if valid {
		p := b.proposed
		b.row.Proposed = &p
	}
	return b.row
}

func processLegacy(r LegacyRow, idx Index) ProcessedRow {
	b := &rowBuilder{row: ProcessedRow{RowNumber: r.RowNumber, SourceName: r.Title}}

	b.match(idx, ResolveTitle(r.Title))
	b.date(parseLegacyDate(r.Date))

	b.proposed.IsRx = strings.HasPrefix(strings.ToLower(strings.TrimSpace(r.RxOrScaled)), "rx")
	b.proposed.Notes = r.Notes

	if err := legacyScore(&b.proposed, r.ScoreType, r.BestResultRaw); err != nil {
		b.scoreError(err)
	}
	return b.finish()
}

// legacyScore fills the score field selected by scoreType. Rounds is tested
// first since "Rounds + Reps" also contains "reps".
func legacyScore(p *ProposedScore, scoreType, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	st := strings.ToLower(scoreType)
	switch {
	case strings.Contains(st, "rounds"):
		rounds, partial, err := parseRounds(raw)
		if err != nil {
			return err
		}
		p.RoundsCompleted = &rounds
		p.PartialReps = partial
	case strings.Contains(st, "time"):
		secs, err := parseDuration(raw)
		if err != nil {
			return err
		}
		p.TimeSeconds = &secs
	case strings.Contains(st, "load"):
		load, err := parseLoad(raw)
		if err != nil {
			return err
		}
		p.Load = &load
	case strings.Contains(st, "reps"):
		reps, err := parseInt("reps", raw)
		if err != nil {
			return err
		}
		p.Reps = &reps
	default:
		return fmt.Errorf("unknown score type %q", scoreType)
	}
	return nil
}

func processNative(r NativeRow, idx Index) ProcessedRow {
	b := &rowBuilder{row: ProcessedRow{RowNumber: r.RowNumber, SourceName: r.WorkoutName}}

	b.match(idx, strings.TrimSpace(r.WorkoutName))
	b.date(parseNativeDate(r.Date))

	b.proposed.IsRx = parseBool(r.IsRx)
	b.proposed.Notes = r.Notes

	// A column that does not parse is dropped when another one did; the
	// row only fails when no score value survives.
	var dropped []error
	intColumn := func(column, raw string, dst **int) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		n, err := parseInt(column, raw)
		if err != nil {
			dropped = append(dropped, err)
			return
		}
		*dst = ptr.To(n)
	}
	intColumn(colTimeSeconds, r.TimeSeconds, &b.proposed.TimeSeconds)
	intColumn(colReps, r.Reps, &b.proposed.Reps)
	intColumn(colRoundsCompleted, r.RoundsCompleted, &b.proposed.RoundsCompleted)
	intColumn(colPartialReps, r.PartialReps, &b.proposed.PartialReps)
	if strings.TrimSpace(r.Load) != "" {
		load, err := parseLoad(r.Load)
		if err != nil {
			dropped = append(dropped, err)
		} else {
			b.proposed.Load = &load
		}
	}

	for _, err := range dropped {
		if b.proposed.hasValue() {
			b.warn("%s: column ignored", err.Error())
		} else {
			b.scoreError(err)
		}
	}
	return b.finish()
}

// Summary counts processed rows by outcome.
type Summary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Selected int `json:"selected"`
}

// Summarize counts rows by outcome.
func Summarize(rows []ProcessedRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		if r.Validation.IsValid {
			s.Valid++
		} else {
			s.Invalid++
		}
		if r.Selected {
			s.Selected++
		}
	}
	return s
}

// SelectedScores returns the scores of the selected valid rows.
func SelectedScores(rows []ProcessedRow, userID int) []models.Score {
	var scores []models.Score
	for _, r := range rows {
		if r.Selected && r.Proposed != nil {
			scores = append(scores, r.Proposed.Score(userID))
		}
	}
	return scores
}
