package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestRoundToNearestDay(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{43199999, 0},
		{43200000, 86399999},
		{86399999, 86399999},
		{86400000, 86400000},
		{Day + 3*Hour, Day},
	}
	for _, tt := range tests {
		if got := RoundToNearestDay(tt.in, time.UTC); got != tt.want {
			t.Errorf("RoundToNearestDay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundToNearestDayLocal(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	noon := time.Date(2024, 5, 10, 13, 0, 0, 0, loc)
	want := time.Date(2024, 5, 11, 0, 0, 0, 0, loc).UnixMilli() - 1
	if got := RoundToNearestDay(noon.UnixMilli(), loc); got != want {
		t.Fatalf("got %s, want %s", FromMs(got, loc), FromMs(want, loc))
	}
}

func TestGridRounding(t *testing.T) {
	tests := []struct {
		v, delta            int64
		floor, ceil, round int64
	}{
		{0, 10, 0, 0, 0},
		{4, 10, 0, 10, 0},
		{5, 10, 0, 10, 10},
		{10, 10, 10, 10, 10},
		{-1, 10, -10, 0, 0},
		{-5, 10, -10, 0, 0},
		{-6, 10, -10, 0, -10},
	}
	for _, tt := range tests {
		if got := FloorTo(tt.v, tt.delta); got != tt.floor {
			t.Errorf("FloorTo(%d, %d) = %d, want %d", tt.v, tt.delta, got, tt.floor)
		}
		if got := CeilTo(tt.v, tt.delta); got != tt.ceil {
			t.Errorf("CeilTo(%d, %d) = %d, want %d", tt.v, tt.delta, got, tt.ceil)
		}
		if got := RoundTo(tt.v, tt.delta); got != tt.round {
			t.Errorf("RoundTo(%d, %d) = %d, want %d", tt.v, tt.delta, got, tt.round)
		}
	}
}

func TestSnapResize(t *testing.T) {
	got, err := SnapResize(Span{Day + 1, 2*Day + 1}, Day)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Span{Day, 3 * Day}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSnapDragRoundsBothEdges(t *testing.T) {
	tests := []struct {
		in, want Span
	}{
		{Span{13 * Hour, 43 * Hour}, Span{Day, 2 * Day}},
		{Span{Day/2 + Hour, Day/2 + Hour + 30*Hour}, Span{Day, 2 * Day}},
		{Span{11 * Hour, 13 * Hour}, Span{0, Day}},
		{Span{Day + Hour, Day + 2*Hour}, Span{Day, Day}},
		{Span{-13 * Hour, -Hour}, Span{-Day, 0}},
	}
	for _, tt := range tests {
		got, err := SnapDrag(tt.in, Day)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("SnapDrag(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got.Start%Day != 0 || got.End%Day != 0 {
			t.Errorf("SnapDrag(%v) = %v is off the grid", tt.in, got)
		}
	}
}

func TestSnapIdempotent(t *testing.T) {
	deltas := []int64{Day / 2, Day, 2 * Day, 15 * Minute}
	spans := []Span{{0, Day}, {-3 * Day, 4 * Day}, {7 * Day, 7 * Day}}
	for _, delta := range deltas {
		for _, s := range spans {
			aligned, err := SnapResize(s, delta)
			if err != nil {
				t.Fatal(err)
			}
			again, _ := SnapResize(aligned, delta)
			if again != aligned {
				t.Errorf("SnapResize not idempotent for %v/%d: %v -> %v", s, delta, aligned, again)
			}
			dragged, _ := SnapDrag(aligned, delta)
			if dragged != aligned {
				t.Errorf("SnapDrag moved aligned span %v/%d to %v", aligned, delta, dragged)
			}
		}
	}
}

func TestSnapRejectsBadInput(t *testing.T) {
	if _, err := SnapResize(Span{0, 10}, 0); !errors.Is(err, ErrInvalidDelta) {
		t.Errorf("expected ErrInvalidDelta, got %v", err)
	}
	if _, err := SnapDrag(Span{10, 0}, Day); !errors.Is(err, ErrNegativeSpan) {
		t.Errorf("expected ErrNegativeSpan, got %v", err)
	}
	if _, err := SnapCreate(5, -1); !errors.Is(err, ErrInvalidDelta) {
		t.Errorf("expected ErrInvalidDelta, got %v", err)
	}
}

func TestSnapCreate(t *testing.T) {
	got, err := SnapCreate(Day+5*Hour, Day)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Span{Day, 2 * Day}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGridLines(t *testing.T) {
	lines, err := GridLines(Range{Start: 0, End: 3 * Day}, Day)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 || lines[3] != 3*Day {
		t.Fatalf("unexpected grid lines %v", lines)
	}
}
