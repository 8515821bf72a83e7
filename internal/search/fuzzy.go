package search

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// foldedText is a lowercased, accent-stripped rune view of a string that
// remembers where each rune starts in the original, so spans found on the
// folded form can be reported as byte offsets into the original text.
type foldedText struct {
	runes   []rune
	offsets []int // offsets[i] is the byte offset of runes[i]; offsets[len] == len(original)
}

func fold(s string) foldedText {
	ft := foldedText{
		runes:   make([]rune, 0, len(s)),
		offsets: make([]int, 0, len(s)+1),
	}
	for i, r := range s {
		ft.runes = append(ft.runes, foldRune(r))
		ft.offsets = append(ft.offsets, i)
	}
	ft.offsets = append(ft.offsets, len(s))
	return ft
}

// foldRune lowercases r and drops any combining marks ("é" -> "e").
// The mapping is rune-for-rune so offsets stay aligned.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r < utf8.RuneSelf {
		return r
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	return base
}

// span converts a rune range of the folded text to byte offsets.
func (ft foldedText) span(start, end int) Span {
	return Span{Start: ft.offsets[start], End: ft.offsets[end]}
}

// approxMatch finds occurrences of pattern inside text with at most maxErr
// edits (Sellers' algorithm: edit distance with a free starting position in
// the text). It returns the smallest distance found and the rune ranges of
// the locally best occurrences. best is -1 when nothing is within maxErr.
func approxMatch(pattern, text []rune, maxErr int) (best int, ranges [][2]int) {
	m, n := len(pattern), len(text)
	best = -1
	if m == 0 || n == 0 {
		return best, nil
	}

	// prev/cur hold one text column of the DP table; starts carry the text
	// index where the alignment ending in that cell began.
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	prevStart := make([]int, m+1)
	curStart := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}

	last := make([]int, n+1)
	lastStart := make([]int, n+1)
	last[0] = m

	for j := 1; j <= n; j++ {
		cur[0] = 0
		curStart[0] = j
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			d, s := prev[i-1]+cost, prevStart[i-1]
			if del := cur[i-1] + 1; del < d {
				d, s = del, curStart[i-1]
			}
			if ins := prev[i] + 1; ins < d {
				d, s = ins, prevStart[i]
			}
			cur[i], curStart[i] = d, s
		}
		last[j], lastStart[j] = cur[m], curStart[m]
		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}

	for j := 1; j <= n; j++ {
		d := last[j]
		if d > maxErr {
			continue
		}
		if best == -1 || d < best {
			best = d
		}
		// Keep only the end of each local minimum so a match does not bleed
		// into the characters that follow it.
		if j < n && last[j+1] <= d {
			continue
		}
		if j > 1 && last[j-1] < d {
			continue
		}
		ranges = appendMerged(ranges, [2]int{lastStart[j], j})
	}
	return best, ranges
}

func appendMerged(ranges [][2]int, r [2]int) [][2]int {
	if n := len(ranges); n > 0 && r[0] <= ranges[n-1][1] {
		if r[1] > ranges[n-1][1] {
			ranges[n-1][1] = r[1]
		}
		if r[0] < ranges[n-1][0] {
			ranges[n-1][0] = r[0]
		}
		return ranges
	}
	return append(ranges, r)
}

// allowedErrors is the edit budget for a pattern of n runes.
func allowedErrors(n int, threshold float64) int {
	return int(threshold * float64(n))
}
