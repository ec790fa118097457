package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flightline/internal/store"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent booking changes (default 50)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		path, err := dbPath(cmd)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("database not found: %s", path)
		}
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.ListRecentChanges(context.Background(), limit)
		if err != nil {
			return err
		}
		for _, c := range changes {
			ts := c.OccurredAt.In(location()).Format("2006-01-02 15:04:05")
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s  %s  %s/%s  %s\n", ts, c.ChangeType, c.ItemID, c.GroupID, c.RowID, formatSpan(c.Span))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().Int("limit", 50, "Number of recent changes to show")
}
