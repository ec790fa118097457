package board

import (
	"errors"
	"testing"

	"flightline/timeline"
)

func TestCreateCommit(t *testing.T) {
	b := fixture(t)
	c, err := b.BeginCreate("g1", "r1", 5*day+3*timeline.Hour, day)
	if err != nil {
		t.Fatal(err)
	}
	preview := c.Preview()
	if !preview.Creating || preview.Span != (timeline.Span{Start: 5 * day, End: 6 * day}) {
		t.Fatalf("preview = %+v", preview)
	}
	if _, err := b.FindItem(preview.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatal("preview must not be on the board before commit")
	}

	if state, err := c.Extend(7*day + 1); err != nil || state != Creating {
		t.Fatalf("Extend = %v, %v", state, err)
	}
	item, err := c.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if item.Creating || item.Span != (timeline.Span{Start: 5 * day, End: 8 * day}) {
		t.Fatalf("committed item = %+v", item)
	}
	if c.State() != Committed {
		t.Fatalf("state = %v", c.State())
	}
	if got, err := b.FindItem(item.ID); err != nil || got != item {
		t.Fatalf("board item = %+v, %v", got, err)
	}
	if _, err := c.Commit(); !errors.Is(err, ErrGestureClosed) {
		t.Fatalf("expected ErrGestureClosed, got %v", err)
	}
}

func TestCreateOnBookedCell(t *testing.T) {
	b := fixture(t)
	if _, err := b.BeginCreate("g1", "r1", timeline.Hour, day); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestCreateExtendStopsAtBooking(t *testing.T) {
	b := fixture(t)
	c, err := b.BeginCreate("g1", "r1", day+timeline.Hour, day)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Extend(2*day + timeline.Hour); err != nil {
		t.Fatal(err)
	}
	if got := c.Preview().Span; got != (timeline.Span{Start: day, End: 2 * day}) {
		t.Fatalf("preview grew into a booking: %v", got)
	}
}

func TestCreateCancel(t *testing.T) {
	b := fixture(t)
	c, err := b.BeginCreate("g1", "r3", 3*day, day)
	if err != nil {
		t.Fatal(err)
	}
	state, err := c.Extend(2 * day)
	if err != nil || state != Cancelled {
		t.Fatalf("moving left of start should cancel, got %v %v", state, err)
	}
	if _, err := c.Commit(); !errors.Is(err, ErrGestureClosed) {
		t.Fatalf("expected ErrGestureClosed, got %v", err)
	}

	c, _ = b.BeginCreate("g1", "r3", 3*day, day)
	c.Cancel()
	if _, err := c.Extend(5 * day); !errors.Is(err, ErrGestureClosed) {
		t.Fatalf("expected ErrGestureClosed, got %v", err)
	}
	if len(b.Items()) != 3 {
		t.Fatalf("cancelled gestures changed the board")
	}
}
