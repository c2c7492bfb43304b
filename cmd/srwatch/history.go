package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/srwatch/internal/journal"
	"github.com/pdiddy/srwatch/internal/setup"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		appDir, err := setup.AppDir()
		if err != nil {
			return err
		}
		store, err := journal.Open(appDir)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		for _, rec := range records {
			line := fmt.Sprintf("%s  %-18s %s",
				rec.StartedAt.Local().Format(time.DateTime), rec.Outcome, rec.Source)
			if rec.Outcome.Terminal() && rec.Published != "" {
				line += fmt.Sprintf("  -> %s (%d rows)", rec.Published, rec.RowsChanged)
			}
			if rec.Error != "" {
				line += "  [" + rec.Error + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
