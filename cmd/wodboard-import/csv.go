package main

import (
	"fmt"

	"github.com/claude/wodboard/internal/csvimport"
	"github.com/claude/wodboard/internal/importer"
	"github.com/claude/wodboard/internal/importstate"
	"github.com/spf13/cobra"
)

var (
	csvDryRun  bool
	csvForce   bool
	csvPreview bool
)

var csvCmd = &cobra.Command{
	Use:   "csv <file-or-dir>",
	Short: "Import scores from a CSV export, or every .csv file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		cfg, db, err := openDB(ctx, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if csvPreview {
			schema, rows, err := importer.Preview(ctx, db, args[0])
			if err != nil {
				return err
			}
			printPreview(schema, rows)
			return nil
		}

		ledger, err := importstate.Open(cfg.Import.StateDir)
		if err != nil {
			return err
		}
		defer ledger.Close()

		if csvDryRun {
			log.Info("DRY RUN mode: no data will be written to the database")
		}

		stats, err := importer.New(db, ledger, log, csvDryRun, csvForce).Import(ctx, args[0])
		printStats(stats)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		return nil
	},
}

func init() {
	csvCmd.Flags().BoolVarP(&csvDryRun, "dry-run", "n", false, "report counts without inserting into database")
	csvCmd.Flags().BoolVarP(&csvForce, "force", "f", false, "import files even if the ledger says they were already imported")
	csvCmd.Flags().BoolVarP(&csvPreview, "preview", "p", false, "print every processed row of a single file and exit")
	rootCmd.AddCommand(csvCmd)
}

func printPreview(schema csvimport.Schema, rows []csvimport.ProcessedRow) {
	printHeader(fmt.Sprintf("PREVIEW (%s export)", schema))
	for _, r := range rows {
		mark := okText("✓")
		target := "(no match)"
		if r.MatchedWorkout != nil {
			target = r.MatchedWorkout.Name
		}
		if !r.Validation.IsValid {
			mark = errorText("✗")
		}
		fmt.Printf("  %s %3d  %-24s → %s\n", mark, r.RowNumber, r.SourceName, target)
		for _, e := range r.Validation.Errors {
			fmt.Printf("          %s\n", dimText(e))
		}
		for _, w := range r.Validation.Warnings {
			fmt.Printf("          %s\n", metricLabel("warning: ")+dimText(w))
		}
	}
	s := csvimport.Summarize(rows)
	fmt.Println()
	printMetric("Rows", s.Total)
	printMetric("Valid", s.Valid)
	printMetric("Invalid", s.Invalid)
}

func printStats(stats *importer.Stats) {
	printHeader("IMPORT")
	printMetric("Files processed", stats.FilesProcessed)
	printMetric("Files skipped", stats.FilesSkipped)
	printMetric("Files errored", stats.FilesErrored)
	printMetric("Rows read", stats.RowsRead)
	printMetric("Rows valid", stats.RowsValid)
	printMetric("Scores inserted", stats.ScoresInserted)
	printMetric("Scores duplicated", stats.ScoresDuplicated)

	if len(stats.Invalid) > 0 {
		fmt.Println()
		fmt.Println(errorText(fmt.Sprintf("Invalid rows (%d):", len(stats.Invalid))))
		for _, r := range stats.Invalid {
			fmt.Printf("  %s:%d %s\n", r.File, r.Row, r.Name)
			for _, e := range r.Errors {
				fmt.Printf("      %s\n", dimText(e))
			}
		}
	}
}
