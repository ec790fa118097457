package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"flightline/board"
	"flightline/internal/logging"
	"flightline/internal/store"
	"flightline/timeline"
)

const instantLayout = "2006-01-02 15:04"

// location returns the configured calendar.
func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.UTC
	}
	return loc
}

func formatMs(ms int64) string {
	return timeline.FromMs(ms, location()).Format(instantLayout)
}

func formatSpan(s timeline.Span) string {
	return formatMs(s.Start) + " -> " + formatMs(s.End)
}

// parseInstant reads a user supplied timestamp in the configured zone.
func parseInstant(s string) (int64, error) {
	t, err := board.ParseTimestamp(s, location())
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// loadBoard reads the board from a YAML file when file is set, otherwise
// from the database.
func loadBoard(cmd *cobra.Command, file string) (*board.Board, string, error) {
	if file != "" {
		b, err := board.Load(file)
		return b, file, err
	}

	path, err := dbPath(cmd)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, "", fmt.Errorf("database not found: %s", path)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	b, err := db.LoadBoard(context.Background())
	return b, path, err
}

// updateBoard loads the stored board under the write lock, applies fn and
// saves the result, printing what changed. Nothing is saved when fn fails.
func updateBoard(cmd *cobra.Command, fn func(b *board.Board) error) error {
	path, err := dbPath(cmd)
	if err != nil {
		return err
	}

	lock, err := store.NewWriteLock(path)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.Log.Warnf("Failed to release lock: %v", err)
		}
	}()

	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	b, err := db.LoadBoard(ctx)
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}
	changes, err := db.SaveBoard(ctx, b)
	if err != nil {
		return err
	}
	printChanges(cmd.OutOrStdout(), changes)
	return nil
}

func printChanges(w io.Writer, changes []store.Change) {
	for _, c := range changes {
		fmt.Fprintf(w, "%-7s  %s  %s/%s  %s\n", c.ChangeType, c.ItemID, c.GroupID, c.RowID, formatSpan(c.Span))
	}
}

// addWindowFlags registers the flags that pick the visible range.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("view", "", "View preset: week, month or quarter (default from config)")
	cmd.Flags().String("start", "", "First day shown (default: today)")
	cmd.Flags().String("end", "", "Last instant shown; overrides the view length")
	cmd.Flags().Int("pan", 0, "Shift the window by this many window lengths (negative goes back)")
}

// visibleRange resolves the window flags and applies --pan.
func visibleRange(cmd *cobra.Command) (timeline.Range, error) {
	r, err := baseRange(cmd)
	if err != nil {
		return timeline.Range{}, err
	}
	if pan, _ := cmd.Flags().GetInt("pan"); pan != 0 {
		r = r.Pan(int64(pan) * r.Size())
	}
	return r, nil
}

// baseRange resolves --view, --start and --end. --end wins over the view
// length, otherwise the view preset anchored at --start is used.
func baseRange(cmd *cobra.Command) (timeline.Range, error) {
	viewName, _ := cmd.Flags().GetString("view")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	anchor := time.Now().In(location())
	if startStr != "" {
		t, err := board.ParseTimestamp(startStr, location())
		if err != nil {
			return timeline.Range{}, err
		}
		anchor = t
	}

	if endStr != "" {
		end, err := parseInstant(endStr)
		if err != nil {
			return timeline.Range{}, err
		}
		r := timeline.Range{Start: anchor.UnixMilli(), End: end}
		return r, r.Validate()
	}

	view := cfg.View()
	if viewName != "" {
		v, err := timeline.ParseView(viewName)
		if err != nil {
			return timeline.Range{}, err
		}
		view = v
	}
	return timeline.ViewRange(view, anchor)
}
