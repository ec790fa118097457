package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightline/timeline"
)

var snapCmd = &cobra.Command{
	Use:   "snap",
	Short: "Show how an instant snaps to the day and to the grid",
	RunE: func(cmd *cobra.Command, _ []string) error {
		at, _ := cmd.Flags().GetString("time")
		if at == "" {
			return fmt.Errorf("--time is required")
		}
		ms, err := parseInstant(at)
		if err != nil {
			return err
		}
		delta := cfg.DeltaMs()
		loc := location()
		start, end := timeline.DayBounds(ms, loc)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "instant:      %s\n", timeline.FromMs(ms, loc).Format("2006-01-02 15:04:05.000 MST"))
		fmt.Fprintf(out, "nearest day:  %s\n", timeline.FromMs(timeline.RoundToNearestDay(ms, loc), loc).Format("2006-01-02 15:04:05.000 MST"))
		fmt.Fprintf(out, "day bounds:   %s -> %s\n", formatMs(start), timeline.FromMs(end, loc).Format("2006-01-02 15:04:05.000"))
		fmt.Fprintf(out, "grid %s: floor %s  round %s  ceil %s\n", cfg.Grid.Delta,
			formatMs(timeline.FloorTo(ms, delta)), formatMs(timeline.RoundTo(ms, delta)), formatMs(timeline.CeilTo(ms, delta)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapCmd)
	snapCmd.Flags().String("time", "", "Instant to snap (RFC 3339 or 2006-01-02 15:04)")
}
