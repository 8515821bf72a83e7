package main

import (
	"fmt"

	"github.com/claude/wodboard/internal/importer"
	"github.com/spf13/cobra"
)

var catalogDryRun bool

var catalogCmd = &cobra.Command{
	Use:   "catalog <file.toml>",
	Short: "Insert or update catalog workouts from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		_, db, err := openDB(ctx, log)
		if err != nil {
			return err
		}
		defer db.Close()

		n, written, err := importer.ImportCatalog(ctx, db, args[0], catalogDryRun)
		if err != nil {
			return fmt.Errorf("catalog import failed: %w", err)
		}

		printHeader("CATALOG")
		printMetric("Workouts in file", n)
		printMetric("Rows written", written)
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVarP(&catalogDryRun, "dry-run", "n", false, "validate the file without writing")
	rootCmd.AddCommand(catalogCmd)
}
