package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flightline/board"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bookings from a CSV file",
	Long: `Reads bookings from CSV. The header must name the columns group, row, start
and end in any order and case; id, group_name and row_name are optional.
Timestamps without a zone are read in the configured time zone. The import
replaces the stored board, or is written to --out as YAML.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		csvFile, _ := cmd.Flags().GetString("csv")
		out, _ := cmd.Flags().GetString("out")
		if csvFile == "" {
			return fmt.Errorf("CSV file is required. Use --csv to specify the file")
		}

		f, err := os.Open(csvFile)
		if err != nil {
			return fmt.Errorf("error opening CSV file: %w", err)
		}
		defer f.Close()

		imported, err := board.ImportCSV(f, location())
		if err != nil {
			return fmt.Errorf("error parsing CSV file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d bookings from %s\n", len(imported.Items()), csvFile)

		if out != "" {
			if err := imported.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Board written to %s\n", out)
			return nil
		}
		return updateBoard(cmd, func(b *board.Board) error {
			b.Groups = imported.Groups
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("csv", "", "CSV file with bookings (required)")
	importCmd.Flags().String("out", "", "Write the board to this YAML file instead of the database")
}
