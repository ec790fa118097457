package timeline

import (
	"errors"
	"math"
)

// ErrInvalidScale is returned for a scale with no width or an empty range.
var ErrInvalidScale = errors.New("scale needs a positive width and a non-empty range")

// Scale converts between milliseconds and pixels for a visible range drawn
// across Width pixels, starting Offset pixels from the left edge (the
// sidebar).
type Scale struct {
	Range  Range
	Width  float64
	Offset float64
}

// NewScale validates and builds a Scale.
func NewScale(r Range, width, offset float64) (Scale, error) {
	if err := r.Validate(); err != nil {
		return Scale{}, err
	}
	if width <= 0 || r.Size() == 0 {
		return Scale{}, ErrInvalidScale
	}
	return Scale{Range: r, Width: width, Offset: offset}, nil
}

// PixelsPerMs is the horizontal resolution of the scale.
func (s Scale) PixelsPerMs() float64 {
	return s.Width / float64(s.Range.Size())
}

// ValueToPixels converts a duration in milliseconds to a pixel length. It is
// the function GenerateMarkers expects for toPixels.
func (s Scale) ValueToPixels(ms int64) float64 {
	return float64(ms) * s.Width / float64(s.Range.Size())
}

// PixelsToValue is the inverse of ValueToPixels, rounded to the nearest
// millisecond.
func (s Scale) PixelsToValue(px float64) int64 {
	return int64(math.Round(px * float64(s.Range.Size()) / s.Width))
}

// X returns the absolute x coordinate of an instant, sidebar included.
func (s Scale) X(ms int64) float64 {
	return s.Offset + s.ValueToPixels(ms-s.Range.Start)
}

// At returns the instant under an absolute x coordinate.
func (s Scale) At(x float64) int64 {
	return s.Range.Start + s.PixelsToValue(x-s.Offset)
}

// Clip trims a span to the visible range. The boolean is false when the span
// lies entirely outside it.
func (s Scale) Clip(sp Span) (Span, bool) {
	if sp.End < s.Range.Start || sp.Start > s.Range.End {
		return Span{}, false
	}
	if sp.Start < s.Range.Start {
		sp.Start = s.Range.Start
	}
	if sp.End > s.Range.End {
		sp.End = s.Range.End
	}
	return sp, true
}
