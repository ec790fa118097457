package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightline/board"
	"flightline/timeline"
)

// bookCmd represents the book command
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Edit the stored board",
	Long: `Edits the board in the database. Every edit snaps to the grid delta of the
configuration and is refused when it would make two bookings of a row
overlap.`,
}

var addGroupCmd = &cobra.Command{
	Use:   "add-group",
	Short: "Append an empty group",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		return updateBoard(cmd, func(b *board.Board) error {
			g, err := b.AddGroup(id, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added group %s\n", g.ID)
			return nil
		})
	},
}

var addRowCmd = &cobra.Command{
	Use:   "add-row",
	Short: "Append an empty flight row to a group",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groupID, _ := cmd.Flags().GetString("group")
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		return updateBoard(cmd, func(b *board.Board) error {
			r, err := b.AddRow(groupID, id, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added row %s to %s\n", r.ID, groupID)
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Book a new item by dragging from --start to --end",
	Long: `Replays a create gesture: the pointer goes down at --start, which books the
grid cell under it, and is dragged to --end, which stretches the booking to
the end of the cell under --end. Without --end one cell is booked. A drag
that ends left of the start books nothing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		groupID, _ := cmd.Flags().GetString("group")
		rowID, _ := cmd.Flags().GetString("row")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		if startStr == "" {
			return fmt.Errorf("--start is required")
		}
		start, err := parseInstant(startStr)
		if err != nil {
			return err
		}

		return updateBoard(cmd, func(b *board.Board) error {
			c, err := b.BeginCreate(groupID, rowID, start, cfg.DeltaMs())
			if err != nil {
				return err
			}
			if endStr != "" {
				end, err := parseInstant(endStr)
				if err != nil {
					return err
				}
				state, err := c.Extend(end)
				if err != nil {
					return err
				}
				if state == board.Cancelled {
					fmt.Fprintln(cmd.OutOrStdout(), "Drag ended before the start, nothing booked")
					return nil
				}
			}
			it, err := c.Commit()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s: %s\n", it.ID, formatSpan(it.Span))
			return nil
		})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Drag a booking so that it starts at --start",
	RunE: func(cmd *cobra.Command, _ []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		startStr, _ := cmd.Flags().GetString("start")
		if startStr == "" {
			return fmt.Errorf("--start is required")
		}
		start, err := parseInstant(startStr)
		if err != nil {
			return err
		}

		return updateBoard(cmd, func(b *board.Board) error {
			it, err := b.FindItem(itemID)
			if err != nil {
				return err
			}
			proposed := it.Span.Shift(start - it.Span.Start)
			moved, err := b.MoveItem(itemID, proposed, cfg.DeltaMs())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s: %s\n", moved.ID, formatSpan(moved.Span))
			return nil
		})
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Drag the edges of a booking to --start and/or --end",
	RunE: func(cmd *cobra.Command, _ []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		if startStr == "" && endStr == "" {
			return fmt.Errorf("--start or --end is required")
		}

		return updateBoard(cmd, func(b *board.Board) error {
			it, err := b.FindItem(itemID)
			if err != nil {
				return err
			}
			proposed := it.Span
			if startStr != "" {
				if proposed.Start, err = parseInstant(startStr); err != nil {
					return err
				}
			}
			if endStr != "" {
				if proposed.End, err = parseInstant(endStr); err != nil {
					return err
				}
			}
			if err := proposed.Validate(); err != nil {
				return err
			}
			resized, err := b.ResizeItem(itemID, proposed, cfg.DeltaMs())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resized %s: %s\n", resized.ID, formatSpan(resized.Span))
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete a booking",
	RunE: func(cmd *cobra.Command, _ []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		return updateBoard(cmd, func(b *board.Board) error {
			return b.RemoveItem(itemID)
		})
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Move a row to the position of another row in its group",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groupID, _ := cmd.Flags().GetString("group")
		rowID, _ := cmd.Flags().GetString("row")
		overID, _ := cmd.Flags().GetString("over")
		return updateBoard(cmd, func(b *board.Board) error {
			if err := b.ReorderRow(groupID, rowID, overID); err != nil {
				return err
			}
			g, err := b.Group(groupID)
			if err != nil {
				return err
			}
			for i := range g.Rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, g.Rows[i].Title())
			}
			return nil
		})
	},
}

var spanCmd = &cobra.Command{
	Use:   "span",
	Short: "Print the envelope of a group or of the whole board",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groupID, _ := cmd.Flags().GetString("group")
		b, _, err := loadBoard(cmd, "")
		if err != nil {
			return err
		}

		var (
			s  timeline.Span
			ok bool
		)
		if groupID != "" {
			if s, ok, err = b.GroupSpan(groupID); err != nil {
				return err
			}
		} else {
			s, ok = b.Span()
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no bookings")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatSpan(s))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.AddCommand(addGroupCmd, addRowCmd, createCmd, moveCmd, resizeCmd, removeCmd, reorderCmd, spanCmd)

	addGroupCmd.Flags().String("id", "", "Group id (default: generated)")
	addGroupCmd.Flags().String("name", "", "Display name")

	addRowCmd.Flags().String("group", "", "Group to append to")
	addRowCmd.Flags().String("id", "", "Row id (default: generated)")
	addRowCmd.Flags().String("name", "", "Display name")

	createCmd.Flags().String("group", "", "Group of the row")
	createCmd.Flags().String("row", "", "Row to book into")
	createCmd.Flags().String("start", "", "Where the drag starts")
	createCmd.Flags().String("end", "", "Where the drag ends (default: one grid cell)")

	moveCmd.Flags().String("item", "", "Booking to move")
	moveCmd.Flags().String("start", "", "Where the booking should start")

	resizeCmd.Flags().String("item", "", "Booking to resize")
	resizeCmd.Flags().String("start", "", "New start edge")
	resizeCmd.Flags().String("end", "", "New end edge")

	removeCmd.Flags().String("item", "", "Booking to delete")

	reorderCmd.Flags().String("group", "", "Group of both rows")
	reorderCmd.Flags().String("row", "", "Row being dragged")
	reorderCmd.Flags().String("over", "", "Row whose position it takes")

	spanCmd.Flags().String("group", "", "Group to measure (default: whole board)")
}
