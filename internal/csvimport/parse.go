package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseLegacyDate parses MM/DD/YYYY by splitting on "/". Calendar-invalid
// dates such as 02/30/2024 are rejected.
func parseLegacyDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected MM/DD/YYYY", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected MM/DD/YYYY", s)
		}
		nums[i] = n
	}
	month, day, year := nums[0], nums[1], nums[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %q: no such day", s)
	}
	return t, nil
}

var nativeDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// parseNativeDate accepts the layouts the native export and common
// spreadsheet round-trips produce.
func parseNativeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range nativeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseDuration reads a time result as plain seconds, mm:ss or h:mm:ss.
func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}

// parseLoad reads a load, ignoring a trailing unit.
func parseLoad(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, unit := range []string{"lbs", "lb", "kgs", "kg"} {
		if trimmed, ok := strings.CutSuffix(v, unit); ok {
			v = strings.TrimSpace(trimmed)
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid load %q", s)
	}
	return f, nil
}

// parseRounds splits "rounds+reps". The partial part is optional.
func parseRounds(s string) (rounds int, partial *int, err error) {
	left, right, hasPartial := strings.Cut(strings.TrimSpace(s), "+")
	rounds, err = strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid rounds %q", s)
	}
	if !hasPartial {
		return rounds, nil, nil
	}
	p, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid rounds %q", s)
	}
	return rounds, &p, nil
}

func parseInt(column, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, s)
	}
	return n, nil
}

// parseBool reads the native is_rx column.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "y", "rx":
		return true
	}
	return false
}
