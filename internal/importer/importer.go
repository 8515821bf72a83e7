// Package importer loads CSV score exports and TOML catalogs from disk into
// the database.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/claude/wodboard/internal/catalog"
	"github.com/claude/wodboard/internal/corpus"
	"github.com/claude/wodboard/internal/csvimport"
	"github.com/claude/wodboard/internal/importstate"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/storage"
)

// Store is the persistence an import needs. *storage.DB satisfies it.
type Store interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	UpsertWorkouts(ctx context.Context, workouts []models.Workout) (int64, error)
	InsertScores(ctx context.Context, scores []models.Score) (int64, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
}

var _ Store = (*storage.DB)(nil)

// Ledger remembers which files were already imported.
// *importstate.Ledger satisfies it.
type Ledger interface {
	IsImported(path, hash string) (bool, error)
	MarkImported(path, hash string, rows int) error
}

var _ Ledger = (*importstate.Ledger)(nil)

// RowError is an invalid row reported back to the user.
type RowError struct {
	File   string   `json:"file"`
	Row    int      `json:"row"`
	Name   string   `json:"name"`
	Errors []string `json:"errors"`
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	RowsRead         int
	RowsValid        int
	ScoresInserted   int64
	ScoresDuplicated int64

	Invalid []RowError
}

// Importer reads CSV exports and inserts their valid rows as scores.
type Importer struct {
	db     Store
	ledger Ledger
	log    *slog.Logger
	userID int
	dryRun bool
	force  bool
	stats  Stats
}

// New creates a new Importer. A nil ledger disables duplicate-file detection.
func New(db Store, ledger Ledger, log *slog.Logger, dryRun, force bool) *Importer {
	return &Importer{db: db, ledger: ledger, log: log, userID: storage.LocalUserID, dryRun: dryRun, force: force}
}

// Import processes a CSV file, or every .csv file directly under a directory.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	files, err := csvFiles(path)
	if err != nil {
		return &imp.stats, err
	}

	workouts, err := imp.db.ListWorkouts(ctx)
	if err != nil {
		return &imp.stats, fmt.Errorf("loading catalog: %w", err)
	}
	idx := corpus.New(workouts).Index()

	for _, f := range files {
		if err := imp.importFile(ctx, f, idx); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(f), err)
		}
	}
	return &imp.stats, nil
}

func csvFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// importFile imports one CSV file. Unreadable files are counted and skipped;
// only database failures abort the run.
func (imp *Importer) importFile(ctx context.Context, path string, idx csvimport.Index) error {
	start := time.Now()

	hash, err := importstate.HashFile(path)
	if err != nil {
		imp.log.Warn("hash failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	if imp.ledger != nil && !imp.force {
		done, err := imp.ledger.IsImported(path, hash)
		if err != nil {
			return err
		}
		if done {
			imp.log.Info("skipping file (already imported)", "file", path)
			imp.stats.FilesSkipped++
			return nil
		}
	}

	schema, rows, err := processFile(path, idx)
	if err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	summary := csvimport.Summarize(rows)
	imp.stats.FilesProcessed++
	imp.stats.RowsRead += summary.Total
	imp.stats.RowsValid += summary.Valid
	for _, r := range rows {
		if !r.Validation.IsValid {
			imp.stats.Invalid = append(imp.stats.Invalid, RowError{
				File:   filepath.Base(path),
				Row:    r.RowNumber,
				Name:   r.SourceName,
				Errors: r.Validation.Errors,
			})
		}
	}

	scores := csvimport.SelectedScores(rows, imp.userID)
	if imp.dryRun {
		imp.stats.ScoresInserted += int64(len(scores))
		return nil
	}

	logID, err := imp.db.InsertImportLog(ctx, storage.ImportLog{
		UserID:       imp.userID,
		Source:       "cli:" + filepath.Base(path),
		Status:       "running",
		RowsReceived: summary.Total,
		RowsValid:    summary.Valid,
	})
	if err != nil {
		return err
	}

	inserted, insertErr := imp.db.InsertScores(ctx, scores)
	entry := storage.ImportLog{
		Status:         "success",
		RowsReceived:   summary.Total,
		RowsValid:      summary.Valid,
		ScoresInserted: inserted,
		Metadata:       fileMetadata(path, hash, schema),
	}
	durationMs := int(time.Since(start).Milliseconds())
	entry.DurationMs = &durationMs
	if insertErr != nil {
		msg := insertErr.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if err := imp.db.UpdateImportLog(ctx, logID, entry); err != nil {
		imp.log.Warn("updating import log", "id", logID, "error", err)
	}
	if insertErr != nil {
		return insertErr
	}

	imp.stats.ScoresInserted += inserted
	imp.stats.ScoresDuplicated += int64(len(scores)) - inserted

	if imp.ledger != nil {
		if err := imp.ledger.MarkImported(path, hash, summary.Total); err != nil {
			imp.log.Warn("recording import in ledger", "file", path, "error", err)
		}
	}
	return nil
}

// Preview processes a single CSV file without touching the database beyond
// loading the catalog.
func Preview(ctx context.Context, db Store, path string) (csvimport.Schema, []csvimport.ProcessedRow, error) {
	workouts, err := db.ListWorkouts(ctx)
	if err != nil {
		return csvimport.SchemaUnknown, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return processFile(path, corpus.New(workouts).Index())
}

func processFile(path string, idx csvimport.Index) (csvimport.Schema, []csvimport.ProcessedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvimport.SchemaUnknown, nil, err
	}
	defer f.Close()

	header, records, err := csvimport.ReadCSV(f)
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
	return schema, csvimport.Process(parsed, idx), nil
}

func fileMetadata(path, hash string, schema csvimport.Schema) *json.RawMessage {
	raw, err := json.Marshal(map[string]string{
		"file":   filepath.Base(path),
		"sha256": hash,
		"schema": schema.String(),
	})
	if err != nil {
		return nil
	}
	msg := json.RawMessage(raw)
	return &msg
}

// ImportCatalog loads a TOML catalog and upserts its workouts by name.
// It returns the number of workouts in the file and the rows written.
func ImportCatalog(ctx context.Context, db Store, path string, dryRun bool) (int, int64, error) {
	workouts, err := catalog.Load(path)
	if err != nil {
		return 0, 0, err
	}
	if dryRun {
		return len(workouts), 0, nil
	}
	n, err := db.UpsertWorkouts(ctx, workouts)
	return len(workouts), n, err
}
