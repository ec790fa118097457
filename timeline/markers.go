package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

var (
	// ErrNoMarkerDefinitions is returned by GenerateMarkers for an empty
	// definition list.
	ErrNoMarkerDefinitions = errors.New("at least one marker definition is required")

	// ErrInvalidPeriod is returned for a marker definition whose period is
	// zero or negative.
	ErrInvalidPeriod = errors.New("marker period must be positive")
)

// MarkerDefinition is a candidate repeating tick on the time axis. It only
// applies while the visible range size lies within [MinRangeSize,
// MaxRangeSize]; a zero bound leaves that side open.
type MarkerDefinition struct {
	Period       int64
	MinRangeSize int64
	MaxRangeSize int64
	Label        func(time.Time) string
}

// appliesTo reports whether the definition is active for a window of the
// given size.
func (d MarkerDefinition) appliesTo(rangeSize int64) bool {
	if d.MinRangeSize != 0 && rangeSize < d.MinRangeSize {
		return false
	}
	if d.MaxRangeSize != 0 && rangeSize > d.MaxRangeSize {
		return false
	}
	return true
}

// Marker is one rendered tick of the time axis.
type Marker struct {
	Time        int64
	Label       string
	PixelOffset float64
	// Weight is 1 for the coarsest definition and 1/n for the n-th one.
	Weight float64
}

// GenerateMarkers walks the visible range at the finest requested period and
// emits a tick wherever some definition lines up with the instant.
//
// Definitions are ranked coarse to fine and the first one that both divides
// the instant and applies to the current range size wins, so a day tick
// always hides the hour tick at midnight. Instants no definition claims are
// skipped. toPixels receives the offset from r.Start in milliseconds; a nil
// toPixels leaves PixelOffset as that raw offset. Labels are rendered in loc
// (UTC when nil).
func GenerateMarkers(r Range, defs []MarkerDefinition, toPixels func(int64) float64, loc *time.Location) ([]Marker, error) {
	if len(defs) == 0 {
		return nil, ErrNoMarkerDefinitions
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	for i, d := range defs {
		if d.Period <= 0 {
			return nil, fmt.Errorf("%w: definition %d has period %d", ErrInvalidPeriod, i, d.Period)
		}
	}

	sorted := make([]MarkerDefinition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period > sorted[j].Period
	})

	delta := sorted[len(sorted)-1].Period
	rangeSize := r.Size()
	startTime := FloorTo(r.Start, delta)

	var markers []Marker
	for t := startTime; t <= r.End; t += delta {
		idx := -1
		for i, d := range sorted {
			if t%d.Period == 0 && d.appliesTo(rangeSize) {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}

		def := sorted[idx]
		m := Marker{
			Time:   t,
			Weight: 1 / float64(idx+1),
		}
		if def.Label != nil {
			m.Label = def.Label(FromMs(t, loc))
		}
		offset := t - r.Start
		if toPixels != nil {
			m.PixelOffset = toPixels(offset)
		} else {
			m.PixelOffset = float64(offset)
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// LabelLayout returns a label function that formats with a time layout.
func LabelLayout(layout string) func(time.Time) string {
	return func(t time.Time) string {
		return t.Format(layout)
	}
}

// LabelHour24 labels an instant with its hour on a 1-24 clock, so midnight
// reads "24".
func LabelHour24(t time.Time) string {
	h := t.Hour()
	if h == 0 {
		h = 24
	}
	return strconv.Itoa(h)
}

// DefaultMarkerDefinitions is the stock axis: weekdays at every zoom, hours
// on day-sized windows and minutes once the window shrinks below a few hours.
func DefaultMarkerDefinitions() []MarkerDefinition {
	minuteLabel := LabelLayout("4")
	return []MarkerDefinition{
		{Period: 24 * Hour, Label: LabelLayout("Mon")},
		{Period: 2 * Hour, MinRangeSize: 24 * Hour, Label: LabelHour24},
		{Period: Hour, MinRangeSize: 24 * Hour},
		{Period: Hour, MaxRangeSize: 24 * Hour, Label: LabelHour24},
		{Period: 30 * Minute, MinRangeSize: 12 * Hour, MaxRangeSize: 24 * Hour},
		{Period: 15 * Minute, MaxRangeSize: 12 * Hour, Label: minuteLabel},
		{Period: 5 * Minute, MinRangeSize: 3 * Hour, MaxRangeSize: 6 * Hour},
		{Period: 5 * Minute, MaxRangeSize: 3 * Hour, Label: minuteLabel},
		{Period: Minute, MaxRangeSize: 2 * Hour},
	}
}
