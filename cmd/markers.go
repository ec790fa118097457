package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"flightline/timeline"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the time axis markers of a window",
	Long: `Prints the ticks the time axis would show for the selected window, using the
marker definitions of the configuration. Offsets are in pixels for a timeline
of --width pixels.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = cfg.Layout.Width - cfg.Layout.SidebarWidth - cfg.Layout.MarginLeft - cfg.Layout.MarginRight
		}
		r, err := visibleRange(cmd)
		if err != nil {
			return err
		}
		scale, err := timeline.NewScale(r, float64(width), 0)
		if err != nil {
			return err
		}
		markers, err := timeline.GenerateMarkers(r, cfg.MarkerDefinitions(), scale.ValueToPixels, location())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tLABEL\tOFFSET\tWEIGHT")
		for _, m := range markers {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3f\n", formatMs(m.Time), m.Label, m.PixelOffset, m.Weight)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(markersCmd)
	addWindowFlags(markersCmd)
	markersCmd.Flags().Int("width", 0, "Timeline width in pixels (default: from the layout config)")
}
