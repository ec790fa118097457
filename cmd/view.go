package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightline/render"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Draw the board in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		width, _ := cmd.Flags().GetInt("width")

		b, _, err := loadBoard(cmd, file)
		if err != nil {
			return err
		}
		r, err := visibleRange(cmd)
		if err != nil {
			return err
		}

		out, err := render.Terminal(b, r, cfg.MarkerDefinitions(), width, location())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addWindowFlags(viewCmd)
	viewCmd.Flags().String("file", "", "Show this YAML board instead of the database")
	viewCmd.Flags().Int("width", 100, "Output width in columns")
}
