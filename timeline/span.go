/*
Package timeline implements the interval arithmetic behind the flight booking
board: overlap detection, grid snapping, span aggregation, axis marker
generation and random span placement.

All values are epoch milliseconds. Nothing in this package keeps state; the
visible range, grid delta, time zone and random source are always passed in
by the caller.
*/
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Millisecond lengths of the common calendar units.
const (
	Second int64 = 1000
	Minute       = 60 * Second
	Hour         = 60 * Minute
	Day          = 24 * Hour
)

var (
	// ErrNegativeSpan is returned when a span ends before it starts.
	ErrNegativeSpan = errors.New("span ends before it starts")

	// ErrInvalidRange is returned when a visible range ends before it starts.
	ErrInvalidRange = errors.New("range ends before it starts")
)

// Span is a time interval in epoch milliseconds. Zero-length spans are valid;
// they show up transiently while an item is being created.
type Span struct {
	Start int64 `yaml:"start"`
	End   int64 `yaml:"end"`
}

// NewSpan builds a span and rejects end < start.
func NewSpan(start, end int64) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// SpanFromTimes converts a pair of wall-clock times into a span.
func SpanFromTimes(start, end time.Time) (Span, error) {
	return NewSpan(start.UnixMilli(), end.UnixMilli())
}

// Validate reports ErrNegativeSpan when the span is inverted.
func (s Span) Validate() error {
	if s.End < s.Start {
		return fmt.Errorf("%w: start=%d end=%d", ErrNegativeSpan, s.Start, s.End)
	}
	return nil
}

// Duration returns End-Start in milliseconds.
func (s Span) Duration() int64 {
	return s.End - s.Start
}

// Shift moves both endpoints by d milliseconds.
func (s Span) Shift(d int64) Span {
	return Span{Start: s.Start + d, End: s.End + d}
}

// Contains reports whether t lies in [Start, End).
func (s Span) Contains(t int64) bool {
	return t >= s.Start && t < s.End
}

// StartTime returns the start as a time in loc (UTC when loc is nil).
func (s Span) StartTime(loc *time.Location) time.Time {
	return FromMs(s.Start, loc)
}

// EndTime returns the end as a time in loc (UTC when loc is nil).
func (s Span) EndTime(loc *time.Location) time.Time {
	return FromMs(s.End, loc)
}

func (s Span) String() string {
	return fmt.Sprintf("%s .. %s",
		s.StartTime(time.UTC).Format(time.RFC3339),
		s.EndTime(time.UTC).Format(time.RFC3339))
}

// Range is the visible window of the timeline. It has the same shape as a
// Span but is owned by whoever drives the view and changes on every pan or
// zoom.
type Range struct {
	Start int64 `yaml:"start"`
	End   int64 `yaml:"end"`
}

// Size returns the width of the window in milliseconds.
func (r Range) Size() int64 {
	return r.End - r.Start
}

// Validate reports ErrInvalidRange when the window is inverted.
func (r Range) Validate() error {
	if r.End < r.Start {
		return fmt.Errorf("%w: start=%d end=%d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Pan slides the window by delta milliseconds, keeping its size.
func (r Range) Pan(delta int64) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Span returns the window as a Span.
func (r Range) Span() Span {
	return Span{Start: r.Start, End: r.End}
}

func (r Range) String() string {
	return r.Span().String()
}

// Ms converts a duration to whole milliseconds.
func Ms(d time.Duration) int64 {
	return d.Milliseconds()
}

// FromMs converts epoch milliseconds to a time in loc. A nil loc means UTC.
func FromMs(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc)
}
