package timeline

import (
	"errors"
	"testing"
)

func TestNewSpan(t *testing.T) {
	if _, err := NewSpan(10, 10); err != nil {
		t.Errorf("zero-length span rejected: %v", err)
	}
	if _, err := NewSpan(10, 5); !errors.Is(err, ErrNegativeSpan) {
		t.Errorf("expected ErrNegativeSpan, got %v", err)
	}
}

func TestRangePan(t *testing.T) {
	r := Range{Start: Day, End: 2 * Day}.Pan(-Day)
	if r.Start != 0 || r.Size() != Day {
		t.Errorf("Pan = %v", r)
	}
}
