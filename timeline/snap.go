package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDelta is returned when a grid delta is zero or negative.
var ErrInvalidDelta = errors.New("grid delta must be positive")

// RoundToNearestDay snaps ms to the nearer boundary of its calendar day in
// loc. The start of day is local midnight and the end of day is the last
// millisecond before the next midnight. An instant exactly between them goes
// to the end of day.
func RoundToNearestDay(ms int64, loc *time.Location) int64 {
	start, end := DayBounds(ms, loc)
	if ms-start < end-ms {
		return start
	}
	return end
}

// DayBounds returns the first and last millisecond of the calendar day that
// contains ms in loc. Days are built with time.Date so DST transitions give
// 23 or 25 hour days.
func DayBounds(ms int64, loc *time.Location) (int64, int64) {
	t := FromMs(ms, loc)
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	next := midnight.AddDate(0, 0, 1)
	return midnight.UnixMilli(), next.UnixMilli() - 1
}

// FloorTo rounds v down to a multiple of delta. Negative values round toward
// minus infinity.
func FloorTo(v, delta int64) int64 {
	q := v / delta
	if v%delta != 0 && v < 0 {
		q--
	}
	return q * delta
}

// CeilTo rounds v up to a multiple of delta.
func CeilTo(v, delta int64) int64 {
	f := FloorTo(v, delta)
	if f == v {
		return v
	}
	return f + delta
}

// RoundTo rounds v to the nearest multiple of delta; halves go up.
func RoundTo(v, delta int64) int64 {
	f := FloorTo(v, delta)
	if 2*(v-f) >= delta {
		return f + delta
	}
	return f
}

// SnapResize aligns a span at the end of a resize. The start is floored and
// the end ceiled so the snapped span always covers what the user dragged to.
func SnapResize(s Span, delta int64) (Span, error) {
	if delta <= 0 {
		return Span{}, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return Span{Start: FloorTo(s.Start, delta), End: CeilTo(s.End, delta)}, nil
}

// SnapDrag aligns a span at the end of a drag. Both edges go to their
// nearest grid line, so the duration can change by up to one delta and a
// short span can collapse to zero length.
func SnapDrag(s Span, delta int64) (Span, error) {
	if delta <= 0 {
		return Span{}, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return Span{Start: RoundTo(s.Start, delta), End: RoundTo(s.End, delta)}, nil
}

// SnapCreate seeds a new item under the pointer: one grid cell starting at
// the grid line at or before at.
func SnapCreate(at, delta int64) (Span, error) {
	if delta <= 0 {
		return Span{}, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	start := FloorTo(at, delta)
	return Span{Start: start, End: start + delta}, nil
}

// GridLines lists the background grid instants of a row, from r.Start up to
// and including r.End in steps of delta.
func GridLines(r Range, delta int64) ([]int64, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	lines := make([]int64, 0, r.Size()/delta+1)
	for t := r.Start; t <= r.End; t += delta {
		lines = append(lines, t)
	}
	return lines, nil
}
