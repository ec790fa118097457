package timeline

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	// DefaultMinLength and DefaultMaxLength bound generated demo bookings.
	DefaultMinLength = 60 * Minute
	DefaultMaxLength = 360 * Minute

	// DefaultMaxAttempts caps rejection sampling in Placer.
	DefaultMaxAttempts = 1000
)

var (
	ErrInvalidLength = errors.New("invalid span length bounds")
	ErrRangeTooSmall = errors.New("range is shorter than the minimum span length")
	ErrCannotPlace   = errors.New("cannot place span without overlap")
)

// RandomSpan picks a uniform duration in [minLen, maxLen] and then a uniform
// start so the span fits inside r. A maxLen longer than r is clamped to the
// range size; only a minLen longer than r fails, with ErrRangeTooSmall.
func RandomSpan(rng *rand.Rand, r Range, minLen, maxLen int64) (Span, error) {
	if err := r.Validate(); err != nil {
		return Span{}, err
	}
	if minLen < 0 || maxLen < minLen {
		return Span{}, fmt.Errorf("%w: min=%d max=%d", ErrInvalidLength, minLen, maxLen)
	}
	if minLen > r.Size() {
		return Span{}, fmt.Errorf("%w: range=%d min=%d", ErrRangeTooSmall, r.Size(), minLen)
	}
	if maxLen > r.Size() {
		maxLen = r.Size()
	}

	duration := minLen + rng.Int64N(maxLen-minLen+1)
	start := r.Start + rng.Int64N(r.End-duration-r.Start+1)
	return Span{Start: start, End: start + duration}, nil
}

// Placer draws random spans that do not overlap the ones already placed.
// Sampling gives up after MaxAttempts rejected candidates so a crowded range
// fails with ErrCannotPlace instead of spinning forever.
type Placer struct {
	Rand        *rand.Rand
	MaxAttempts int
}

// NewPlacer returns a Placer seeded with seed and the default attempt cap.
func NewPlacer(seed uint64) *Placer {
	return &Placer{
		Rand:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Place returns a span in r that overlaps none of placed.
func (p *Placer) Place(r Range, minLen, maxLen int64, placed []Span) (Span, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		candidate, err := RandomSpan(p.Rand, r, minLen, maxLen)
		if err != nil {
			return Span{}, err
		}
		if !IsOverlapping(candidate, placed) {
			return candidate, nil
		}
	}
	return Span{}, fmt.Errorf("%w: gave up after %d attempts with %d spans placed", ErrCannotPlace, attempts, len(placed))
}

// PlaceN places n mutually non-overlapping spans, each checked against the
// ones before it.
func (p *Placer) PlaceN(n int, r Range, minLen, maxLen int64) ([]Span, error) {
	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		s, err := p.Place(r, minLen, maxLen, spans)
		if err != nil {
			return spans, err
		}
		spans = append(spans, s)
	}
	return spans, nil
}
