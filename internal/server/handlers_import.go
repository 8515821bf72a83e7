package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/csvimport"
	"github.com/claude/wodboard/internal/storage"
)

// maxUploadBytes caps CSV request bodies.
const maxUploadBytes = 10 << 20

// importResult is the response of a committed CSV import.
type importResult struct {
	ImportLogID    int64             `json:"import_log_id"`
	Schema         string            `json:"schema"`
	Summary        csvimport.Summary `json:"summary"`
	ScoresInserted int64             `json:"scores_inserted"`
}

// previewResult is the response of a dry-run CSV import.
type previewResult struct {
	Schema  string                   `json:"schema"`
	Summary csvimport.Summary        `json:"summary"`
	Rows    []csvimport.ProcessedRow `json:"rows"`
}

func (s *Server) handlePreviewCSV(w http.ResponseWriter, r *http.Request) {
	schema, rows, err := s.processUpload(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, previewResult{
		Schema:  schema.String(),
		Summary: csvimport.Summarize(rows),
		Rows:    rows,
	})
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := userIDFromContext(r)
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "csv"
	}

	schema, rows, err := s.processUpload(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	summary := csvimport.Summarize(rows)

	logID, err := s.store.InsertImportLog(r.Context(), storage.ImportLog{
		UserID:       userID,
		Source:       source,
		Status:       "running",
		RowsReceived: summary.Total,
		RowsValid:    summary.Valid,
	})
	if err != nil {
		s.log.Error("creating import log", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	inserted, insertErr := s.store.InsertScores(r.Context(), csvimport.SelectedScores(rows, userID))

	entry := storage.ImportLog{
		Status:         "success",
		RowsReceived:   summary.Total,
		RowsValid:      summary.Valid,
		ScoresInserted: inserted,
		Metadata:       importMetadata(schema, summary),
	}
	durationMs := int(time.Since(start).Milliseconds())
	entry.DurationMs = &durationMs
	if insertErr != nil {
		msg := insertErr.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if err := s.store.UpdateImportLog(r.Context(), logID, entry); err != nil {
		s.log.Warn("updating import log", "id", logID, "error", err)
	}

	if insertErr != nil {
		s.log.Error("csv import failed", "source", source, "error", insertErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": insertErr.Error()})
		return
	}

	s.log.Info("csv import complete",
		"source", source,
		"schema", schema.String(),
		"rows", summary.Total,
		"valid", summary.Valid,
		"inserted", inserted,
	)
	writeJSON(w, http.StatusOK, importResult{
		ImportLogID:    logID,
		Schema:         schema.String(),
		Summary:        summary,
		ScoresInserted: inserted,
	})
}

// processUpload reads the CSV request body and resolves it against the
// catalog. Row numbers listed in the skip query parameter are deselected.
func (s *Server) processUpload(w http.ResponseWriter, r *http.Request) (csvimport.Schema, []csvimport.ProcessedRow, error) {
	skip, err := parseRowList(r.URL.Query().Get("skip"))
	if err != nil {
		return csvimport.SchemaUnknown, nil, err
	}

	header, records, err := csvimport.ReadCSV(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		return csvimport.SchemaUnknown, nil, err
	}
	schema, err := csvimport.DetectSchema(header)
	if err != nil {
		return csvimport.SchemaUnknown, nil, err
	}
	parsed, err := csvimport.ParseRows(header, records)
	if err != nil {
		return schema, nil, err
	}

	c, err := s.corpus(r)
	if err != nil {
		return schema, nil, fmt.Errorf("loading catalog: %w", err)
	}
	rows := csvimport.Process(parsed, c.Index())
	for i := range rows {
		if skip[rows[i].RowNumber] {
			rows[i].Selected = false
		}
	}
	return schema, rows, nil
}

// parseRowList parses a comma-separated list of row numbers.
func parseRowList(v string) (map[int]bool, error) {
	out := make(map[int]bool)
	if v == "" {
		return out, nil
	}
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, errors.New("skip must be a comma-separated list of row numbers")
		}
		out[n] = true
	}
	return out, nil
}

func importMetadata(schema csvimport.Schema, summary csvimport.Summary) *json.RawMessage {
	raw, err := json.Marshal(map[string]any{
		"schema":   schema.String(),
		"invalid":  summary.Invalid,
		"selected": summary.Selected,
	})
	if err != nil {
		return nil
	}
	msg := json.RawMessage(raw)
	return &msg
}
