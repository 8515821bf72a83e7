package main

import (
	"fmt"

	"github.com/claude/wodboard/internal/config"
	"github.com/claude/wodboard/internal/importstate"
	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List CSV files recorded as imported",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ledger, err := importstate.Open(cfg.Import.StateDir)
		if err != nil {
			return err
		}
		defer ledger.Close()

		entries, err := ledger.List()
		if err != nil {
			return err
		}

		printHeader("IMPORTED FILES")
		if len(entries) == 0 {
			fmt.Println(dimText("  (none)"))
			return nil
		}
		for _, e := range entries {
			fmt.Printf("  %s  %s  %s\n",
				e.ImportedAt.Local().Format("2006-01-02 15:04"),
				metricLabel(fmt.Sprintf("%4d rows", e.Rows)),
				e.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
