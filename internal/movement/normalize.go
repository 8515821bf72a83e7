// Package movement turns free-text movement mentions into canonical names.
//
// Normalization is table-driven: a fixed alias table covers the common
// spellings, a naive singular form is tried next, and any other phrase long
// enough to be meaningful is accepted as a new, synthesized movement.
package movement

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind tells whether a canonical name came from the alias table or was
// synthesized from an unknown phrase.
type Kind int

const (
	Known Kind = iota
	Synthesized
)

func (k Kind) String() string {
	if k == Synthesized {
		return "synthesized"
	}
	return "known"
}

// MarshalText lets Kind appear as a string in JSON maps and values.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "known":
		*k = Known
	case "synthesized":
		*k = Synthesized
	default:
		return fmt.Errorf("unknown movement kind %q", b)
	}
	return nil
}

// Canonical is the normalized form of a movement variant.
type Canonical struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Normalize maps a raw movement variant to its canonical name.
// The second return value is false when the input is too short to name a
// movement.
func Normalize(raw string) (Canonical, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return Canonical{}, false
	}

	if name, ok := lookupAlias(key); ok {
		return Canonical{Name: name, Kind: Known}, true
	}

	if singular, found := strings.CutSuffix(key, "s"); found {
		if name, ok := lookupAlias(singular); ok {
			return Canonical{Name: name, Kind: Known}, true
		}
	}

	if utf8.RuneCountInString(key) <= 2 {
		return Canonical{}, false
	}
	return Canonical{Name: titleWords(key), Kind: Synthesized}, true
}

// titleWords upper-cases the first letter of every whitespace-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToTitle(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
