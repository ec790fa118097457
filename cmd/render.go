package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flightline/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the board as an SVG file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		out, _ := cmd.Flags().GetString("out")

		b, source, err := loadBoard(cmd, file)
		if err != nil {
			return err
		}
		r, err := visibleRange(cmd)
		if err != nil {
			return err
		}

		svgContent, err := render.SVG(b, r, cfg.MarkerDefinitions(), cfg)
		if err != nil {
			return err
		}

		outputPath := render.OutputFilename(source, out)
		if err := os.WriteFile(outputPath, []byte(svgContent), 0644); err != nil {
			return fmt.Errorf("error writing SVG file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Board SVG generated successfully: %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addWindowFlags(renderCmd)
	renderCmd.Flags().String("file", "", "Render this YAML board instead of the database")
	renderCmd.Flags().String("out", "", "Output SVG filename (default: source name with .svg)")
}
