package search

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

var errNoTerms = errors.New("no search terms")

// Terms returns the literal terms of a query: the phrase of a quoted query,
// or the lowercased tokens of an unquoted one.
func Terms(raw string) []string {
	q := ParseQuery(raw)
	switch q.Mode {
	case ModeExact:
		return []string{q.Phrase}
	case ModeFuzzy, ModeMultiToken:
		terms := make([]string, len(q.Tokens))
		for i, t := range q.Tokens {
			terms[i] = strings.ToLower(t)
		}
		return terms
	}
	return nil
}

// Pattern builds the case-insensitive alternation of the escaped terms,
// longest first so overlapping terms highlight the widest match. Filtering
// and highlighting both go through it so they always agree.
func Pattern(terms []string) (*regexp.Regexp, error) {
	sorted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			sorted = append(sorted, t)
		}
	}
	if len(sorted) == 0 {
		return nil, errNoTerms
	}
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.Compile("(?i)" + strings.Join(quoted, "|"))
}

// MatchesAllTerms reports whether every term of the query is a literal,
// case-insensitive substring of at least one of the document's name,
// description, tags or movements. A blank query matches nothing.
func MatchesAllTerms(d Document, raw string) bool {
	terms := Terms(raw)
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		re, err := Pattern([]string{term})
		if err != nil || !documentMatches(d, re) {
			return false
		}
	}
	return true
}

func documentMatches(d Document, re *regexp.Regexp) bool {
	if re.MatchString(d.Name) || re.MatchString(d.Description) {
		return true
	}
	for _, t := range d.Tags {
		if re.MatchString(t) {
			return true
		}
	}
	for _, m := range d.Movements {
		if re.MatchString(m) {
			return true
		}
	}
	return false
}

// Highlight returns the byte spans of text matched by the query's terms.
// It returns nil when there is nothing to highlight.
func Highlight(text, raw string) []Span {
	re, err := Pattern(Terms(raw))
	if err != nil {
		return nil
	}
	return regexpSpans(re, text)
}

// HighlightDocument re-scans every field of d for the query's terms. It is
// the span source for multi-token results, which carry none of their own.
func HighlightDocument(d Document, raw string) []FieldMatch {
	re, err := Pattern(Terms(raw))
	if err != nil {
		return nil
	}
	var matches []FieldMatch
	matches = appendRegexpMatch(matches, re, FieldName, -1, d.Name)
	matches = appendRegexpMatch(matches, re, FieldDescription, -1, d.Description)
	for i, m := range d.Movements {
		matches = appendRegexpMatch(matches, re, FieldMovements, i, m)
	}
	for i, t := range d.Tags {
		matches = appendRegexpMatch(matches, re, FieldTags, i, t)
	}
	return matches
}

func appendRegexpMatch(matches []FieldMatch, re *regexp.Regexp, field Field, index int, value string) []FieldMatch {
	spans := regexpSpans(re, value)
	if len(spans) == 0 {
		return matches
	}
	return append(matches, FieldMatch{Field: field, Index: index, Value: value, Spans: spans})
}

func regexpSpans(re *regexp.Regexp, text string) []Span {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, len(locs))
	for i, loc := range locs {
		spans[i] = Span{Start: loc[0], End: loc[1]}
	}
	return spans
}
