// Package search matches user queries against the workout corpus.
//
// A query is dispatched on its shape: a double-quoted phrase is an exact,
// case-insensitive substring match; a single bare token is matched
// approximately with a strict edit budget; several bare tokens are each
// matched approximately and combined with AND. A blank
// query matches nothing, so callers handle the "no filter" state themselves.
package search

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// Field names a searchable part of a document.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldMovements   Field = "movements"
	FieldTags        Field = "tags"
)

// fieldRank orders fields when two results score the same.
var fieldRank = map[Field]int{
	FieldName:        0,
	FieldMovements:   1,
	FieldTags:        2,
	FieldDescription: 3,
}

// Document is the searchable view of a workout.
type Document struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Movements   []string
}

// Span is a half-open byte range [Start, End) inside a field value.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FieldMatch locates a match inside one field value. Index is the position
// within Tags or Movements, and -1 for scalar fields.
type FieldMatch struct {
	Field Field  `json:"field"`
	Index int    `json:"index"`
	Value string `json:"value"`
	Spans []Span `json:"spans"`
}

// Result is one matching document. Matches is empty for multi-token results.
type Result struct {
	ID      string       `json:"id"`
	Score   float64      `json:"score"`
	Matches []FieldMatch `json:"matches,omitempty"`
}

// Options tunes the approximate matcher. A threshold is the fraction of the
// token length that may be edited: 0 means exact substring only.
//
// MultiTokenThreshold applies to each token of a multi-token query but is
// capped by Threshold: a token inside an AND query never gets a larger edit
// budget than the same token searched alone, so dropping a token can only
// widen the result set.
type Options struct {
	Threshold           float64
	MultiTokenThreshold float64
}

func (o Options) singleBudget(n int) int {
	return allowedErrors(n, o.Threshold)
}

func (o Options) multiBudget(n int) int {
	return min(allowedErrors(n, o.MultiTokenThreshold), o.singleBudget(n))
}

// DefaultOptions returns the thresholds used when none are configured.
func DefaultOptions() Options {
	return Options{Threshold: 0.25, MultiTokenThreshold: 0.34}
}

// Search runs a raw query against docs and returns the matches.
func Search(docs []Document, raw string, opts Options) []Result {
	q := ParseQuery(raw)
	switch q.Mode {
	case ModeExact:
		return searchExact(docs, q.Phrase)
	case ModeFuzzy:
		return searchFuzzy(docs, q.Tokens[0], opts.singleBudget)
	case ModeMultiToken:
		return searchAllTokens(docs, q.Tokens, opts.multiBudget)
	}
	return nil
}

// searchExact keeps documents whose name, description or a movement contains
// the phrase. Tags are not considered, and the phrase is never split.
func searchExact(docs []Document, phrase string) []Result {
	re, err := Pattern([]string{phrase})
	if err != nil {
		return nil
	}

	var results []Result
	for _, d := range docs {
		var matches []FieldMatch
		matches = appendRegexpMatch(matches, re, FieldName, -1, d.Name)
		matches = appendRegexpMatch(matches, re, FieldDescription, -1, d.Description)
		for i, m := range d.Movements {
			matches = appendRegexpMatch(matches, re, FieldMovements, i, m)
		}
		if len(matches) > 0 {
			results = append(results, Result{ID: d.ID, Matches: matches})
		}
	}
	return results
}

// searchFuzzy scores every document against one token and returns the
// matches best-first, keeping corpus order among equal scores.
func searchFuzzy(docs []Document, token string, budget func(n int) int) []Result {
	pattern := fold(token).runes
	maxErr := budget(len(pattern))

	type ranked struct {
		Result
		rank int
	}
	var hits []ranked
	for _, d := range docs {
		r, rank, ok := matchDocument(d, pattern, maxErr)
		if ok {
			hits = append(hits, ranked{Result: r, rank: rank})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		return hits[i].rank < hits[j].rank
	})

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = h.Result
	}
	return results
}

// matchDocument approximately matches pattern against every searchable field
// of d. The score is the best distance over the pattern length; rank is the
// field order of the best-scoring field.
func matchDocument(d Document, pattern []rune, maxErr int) (Result, int, bool) {
	res := Result{ID: d.ID}
	bestDist, bestRank := -1, len(fieldRank)

	try := func(field Field, index int, value string) {
		ft := fold(value)
		dist, ranges := approxMatch(pattern, ft.runes, maxErr)
		if dist < 0 {
			return
		}
		fm := FieldMatch{Field: field, Index: index, Value: value}
		for _, r := range ranges {
			fm.Spans = append(fm.Spans, ft.span(r[0], r[1]))
		}
		res.Matches = append(res.Matches, fm)
		rank := fieldRank[field]
		if bestDist == -1 || dist < bestDist || (dist == bestDist && rank < bestRank) {
			bestDist, bestRank = dist, rank
		}
	}

	try(FieldName, -1, d.Name)
	try(FieldDescription, -1, d.Description)
	for i, m := range d.Movements {
		try(FieldMovements, i, m)
	}
	for i, t := range d.Tags {
		try(FieldTags, i, t)
	}

	if bestDist < 0 {
		return Result{}, 0, false
	}
	res.Score = float64(bestDist) / float64(len(pattern))
	return res, bestRank, true
}

// searchAllTokens runs one fuzzy search per token and keeps the documents
// found by all of them. Match spans are dropped: they describe a single
// token and do not survive the intersection.
func searchAllTokens(docs []Document, tokens []string, budget func(n int) int) []Result {
	found := make([]map[string]bool, len(tokens))

	var g errgroup.Group
	for i, tok := range tokens {
		g.Go(func() error {
			ids := map[string]bool{}
			for _, r := range searchFuzzy(docs, tok, budget) {
				ids[r.ID] = true
			}
			found[i] = ids
			return nil
		})
	}
	// Sub-searches are pure and never fail.
	_ = g.Wait()

	var results []Result
	for _, d := range docs {
		all := true
		for _, ids := range found {
			if !ids[d.ID] {
				all = false
				break
			}
		}
		if all {
			results = append(results, Result{ID: d.ID})
		}
	}
	return results
}
