package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flightline/board"
	"flightline/internal/logging"
	"flightline/timeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill a board with random, non-overlapping demo bookings",
	Long: `Generates groups of rows with random bookings inside the selected window.
Booking lengths come from the placement section of the configuration. The
result replaces the stored board, or is written to --out as YAML.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		groups, _ := cmd.Flags().GetInt("groups")
		rows, _ := cmd.Flags().GetInt("rows")
		items, _ := cmd.Flags().GetInt("items")
		seed, _ := cmd.Flags().GetUint64("seed")
		out, _ := cmd.Flags().GetString("out")

		r, err := visibleRange(cmd)
		if err != nil {
			return err
		}
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		placer := timeline.NewPlacer(seed)
		placer.MaxAttempts = cfg.Placement.MaxAttempts

		generated, err := board.Generate(placer, board.GenerateOptions{
			Groups:       groups,
			RowsPerGroup: rows,
			ItemsPerRow:  items,
			Range:        r,
			MinLength:    timeline.Ms(cfg.Placement.MinLength),
			MaxLength:    timeline.Ms(cfg.Placement.MaxLength),
		})
		if err != nil {
			return err
		}
		logging.Log.Debugf("Generated board with seed %d over %s", seed, r)

		if out != "" {
			if err := generated.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Board written to %s\n", out)
			return nil
		}
		return updateBoard(cmd, func(b *board.Board) error {
			b.Groups = generated.Groups
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addWindowFlags(generateCmd)
	generateCmd.Flags().Int("groups", 2, "Number of groups")
	generateCmd.Flags().Int("rows", 3, "Rows per group")
	generateCmd.Flags().Int("items", 4, "Bookings per row")
	generateCmd.Flags().Uint64("seed", 0, "Random seed (default: time based)")
	generateCmd.Flags().String("out", "", "Write the board to this YAML file instead of the database")
}
