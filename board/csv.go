package board

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"flightline/internal/logging"
	"flightline/timeline"
)

// timestampFormats are tried in order for the start and end columns.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ImportCSV reads bookings from CSV into a new board. The header must name
// the columns group, row, start and end (case-insensitive, any order);
// optional columns are id, group_name and row_name. Groups and rows are
// created in order of first appearance. Timestamps without a zone are read
// in loc.
func ImportCSV(r io.Reader, loc *time.Location) (*Board, error) {
	if loc == nil {
		loc = time.UTC
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	// Create case-insensitive column mapping
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"group", "row", "start", "end"} {
		if _, ok := columnMap[required]; !ok {
			return nil, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", required, header)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := columnMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	b := New()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		groupID, rowID := field(record, "group"), field(record, "row")
		if groupID == "" || rowID == "" {
			return nil, fmt.Errorf("line %d: group and row are required", line)
		}
		start, err := ParseTimestamp(field(record, "start"), loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		end, err := ParseTimestamp(field(record, "end"), loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		span, err := timeline.SpanFromTimes(start, end)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if _, err := b.Group(groupID); err != nil {
			if _, err := b.AddGroup(groupID, field(record, "group_name")); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if _, err := b.Row(groupID, rowID); err != nil {
			if _, err := b.AddRow(groupID, rowID, field(record, "row_name")); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if _, err := b.AddItem(groupID, rowID, field(record, "id"), span); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	logging.Log.Debugf("Imported %d items from CSV", len(b.Items()))
	return b, nil
}

// ParseTimestamp reads a timestamp in any of the accepted CSV formats. Values
// without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	for _, format := range timestampFormats {
		t, err = time.ParseInLocation(format, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp '%s': %w", s, err)
}
