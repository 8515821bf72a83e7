package search

import (
	"strings"
)

// Mode is the matching strategy selected by the shape of a query.
type Mode int

const (
	// ModeNone is a blank query. It matches nothing.
	ModeNone Mode = iota
	// ModeExact is a double-quoted phrase matched as a literal substring.
	ModeExact
	// ModeFuzzy is a single unquoted token matched approximately.
	ModeFuzzy
	// ModeMultiToken is several unquoted tokens, each matched approximately
	// and combined with AND.
	ModeMultiToken
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeFuzzy:
		return "fuzzy"
	case ModeMultiToken:
		return "multi_token"
	}
	return "none"
}

// Query is a parsed search string.
type Query struct {
	Raw    string
	Mode   Mode
	Phrase string   // lowercased phrase for ModeExact
	Tokens []string // tokens for ModeFuzzy and ModeMultiToken
}

// ParseQuery classifies a raw query string.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return q
	}

	if phrase, ok := quotedPhrase(trimmed); ok {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			return q
		}
		q.Mode = ModeExact
		q.Phrase = phrase
		return q
	}

	q.Tokens = strings.Fields(trimmed)
	if len(q.Tokens) == 1 {
		q.Mode = ModeFuzzy
	} else {
		q.Mode = ModeMultiToken
	}
	return q
}

// quotedPhrase returns the content of a string wrapped in double quotes.
func quotedPhrase(s string) (string, bool) {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1], true
	}
	return "", false
}
