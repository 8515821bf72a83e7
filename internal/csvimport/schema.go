// Package csvimport resolves rows of an exported score CSV to known
// workouts and turns each one into a proposed score with validation errors.
//
// Two exports are understood: the legacy third-party format (one raw result
// plus a score type) and this service's own export (one column per score
// field). The header decides which parser a file goes through.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownSchema is returned when a header matches neither export format.
var ErrUnknownSchema = errors.New("unrecognized CSV header")

// Schema identifies an export format.
type Schema int

const (
	SchemaUnknown Schema = iota
	SchemaLegacy
	SchemaNative
)

func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	case SchemaNative:
		return "native"
	}
	return "unknown"
}

// Column names of the legacy export.
const (
	colDate          = "date"
	colTitle         = "title"
	colScoreType     = "score_type"
	colBestResultRaw = "best_result_raw"
	colRxOrScaled    = "rx_or_scaled"
	colNotes         = "notes"
)

// Column names of the native export.
const (
	colWorkoutName     = "workout_name"
	colTimeSeconds     = "time_seconds"
	colReps            = "reps"
	colLoad            = "load"
	colRoundsCompleted = "rounds_completed"
	colPartialReps     = "partial_reps"
	colIsRx            = "is_rx"
)

var (
	legacyRequired = []string{colDate, colTitle, colScoreType, colBestResultRaw}
	nativeRequired = []string{colWorkoutName, colDate}
)

// Record is one CSV data row keyed by normalized header name.
type Record map[string]string

// DetectSchema picks the export format from the header columns.
func DetectSchema(header []string) (Schema, error) {
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[normalizeHeader(h)] = true
	}
	switch {
	case hasAll(cols, nativeRequired):
		return SchemaNative, nil
	case hasAll(cols, legacyRequired):
		return SchemaLegacy, nil
	}
	return SchemaUnknown, fmt.Errorf("%w: %s", ErrUnknownSchema, strings.Join(header, ","))
}

func hasAll(cols map[string]bool, required []string) bool {
	for _, c := range required {
		if !cols[c] {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// ReadCSV tokenizes a CSV stream into its normalized header and
// header-keyed records. Short rows leave the missing columns empty.
func ReadCSV(r io.Reader) ([]string, []Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("reading header: empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	var records []Record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(fields) {
				rec[h] = strings.TrimSpace(fields[i])
			}
		}
		records = append(records, rec)
	}
	return header, records, nil
}
