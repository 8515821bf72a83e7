package main

import (
	"fmt"
	"os"

	"github.com/claude/wodboard/internal/upload"
	"github.com/spf13/cobra"
)

var (
	uploadServer string
	uploadAPIKey string
	uploadSource string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.csv>",
	Short: "Send a CSV export to a remote WODBoard server instead of the local database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := uploadAPIKey
		if key == "" {
			key = os.Getenv("WODBOARD_AUTH_API_KEY")
		}
		if key == "" {
			return fmt.Errorf("an API key is required (--api-key or WODBOARD_AUTH_API_KEY)")
		}

		res, err := upload.NewClient(uploadServer, key).UploadCSV(cmd.Context(), args[0], uploadSource)
		if err != nil {
			return err
		}

		printHeader("UPLOAD")
		printMetric("Schema", res.Schema)
		printMetric("Rows", res.Summary.Total)
		printMetric("Valid", res.Summary.Valid)
		printMetric("Invalid", res.Summary.Invalid)
		printMetric("Scores inserted", res.ScoresInserted)
		printMetric("Import log", res.ImportLogID)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadServer, "server", "s", "http://wodboard", "server base URL")
	uploadCmd.Flags().StringVarP(&uploadAPIKey, "api-key", "k", "", "API key (defaults to WODBOARD_AUTH_API_KEY)")
	uploadCmd.Flags().StringVar(&uploadSource, "source", "csv", "source label recorded in the import log")
	rootCmd.AddCommand(uploadCmd)
}
