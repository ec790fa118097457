package timeline

import (
	"fmt"
	"strings"
	"time"
)

// View is a named zoom preset of the board.
type View string

const (
	ViewWeek    View = "week"
	ViewMonth   View = "month"
	ViewQuarter View = "quarter"
)

// ParseView accepts a view name in any case.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewWeek, ViewMonth, ViewQuarter:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q (want week, month or quarter)", s)
	}
}

// ViewRange returns the window a view shows when anchored at anchor: from the
// start of the anchor's day to the end of the day one week, one month or
// three months later.
func ViewRange(v View, anchor time.Time) (Range, error) {
	y, m, d := anchor.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())

	var last time.Time
	switch v {
	case ViewWeek:
		last = start.AddDate(0, 0, 7)
	case ViewMonth:
		last = start.AddDate(0, 1, 0)
	case ViewQuarter:
		last = start.AddDate(0, 3, 0)
	default:
		return Range{}, fmt.Errorf("unknown view %q", v)
	}
	_, end := DayBounds(last.UnixMilli(), anchor.Location())
	return Range{Start: start.UnixMilli(), End: end}, nil
}

// WeekRange returns the Sunday-to-Saturday week that contains anchor.
func WeekRange(anchor time.Time) Range {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	sunday := day.AddDate(0, 0, -int(day.Weekday()))
	next := sunday.AddDate(0, 0, 7)
	return Range{Start: sunday.UnixMilli(), End: next.UnixMilli() - 1}
}
