package board

import (
	"errors"
	"testing"

	"flightline/timeline"
)

const day = timeline.Day

func fixture(t *testing.T) *Board {
	t.Helper()
	b := New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err := b.AddGroup("g1", "Campaign")
	must(err)
	for _, id := range []string{"r1", "r2", "r3"} {
		_, err = b.AddRow("g1", id, "")
		must(err)
	}
	_, err = b.AddItem("g1", "r1", "a", timeline.Span{Start: 0, End: day})
	must(err)
	_, err = b.AddItem("g1", "r1", "b", timeline.Span{Start: 2 * day, End: 3 * day})
	must(err)
	_, err = b.AddItem("g1", "r2", "c", timeline.Span{Start: day, End: 4 * day})
	must(err)
	return b
}

func rowOrder(t *testing.T, b *Board, groupID string) []string {
	t.Helper()
	g, err := b.Group(groupID)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, r := range g.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestGroupSpan(t *testing.T) {
	b := fixture(t)
	s, ok, err := b.GroupSpan("g1")
	if err != nil || !ok {
		t.Fatalf("GroupSpan: %v %v", ok, err)
	}
	if want := (timeline.Span{Start: 0, End: 4 * day}); s != want {
		t.Fatalf("got %v, want %v", s, want)
	}

	if _, err := b.AddGroup("g2", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.GroupSpan("g2"); ok {
		t.Fatal("empty group must report no data")
	}
	if _, _, err := b.GroupSpan("nope"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestAddItem(t *testing.T) {
	b := fixture(t)
	if _, err := b.AddItem("g1", "r1", "x", timeline.Span{Start: day / 2, End: day * 2}); !errors.Is(err, ErrOverlap) {
		t.Errorf("expected ErrOverlap, got %v", err)
	}
	if _, err := b.AddItem("g1", "r1", "touching", timeline.Span{Start: day, End: 2 * day}); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
	if _, err := b.AddItem("g1", "r3", "a", timeline.Span{Start: 0, End: day}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := b.AddItem("g1", "r3", "", timeline.Span{Start: day, End: 0}); !errors.Is(err, timeline.ErrNegativeSpan) {
		t.Errorf("expected ErrNegativeSpan, got %v", err)
	}
	if _, err := b.AddItem("g1", "r9", "", timeline.Span{}); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("expected ErrRowNotFound, got %v", err)
	}
}

func TestMoveItem(t *testing.T) {
	b := fixture(t)

	got, err := b.MoveItem("a", timeline.Span{Start: 4*day + 5*timeline.Hour, End: 5*day + 5*timeline.Hour}, day)
	if err != nil {
		t.Fatal(err)
	}
	if want := (timeline.Span{Start: 4 * day, End: 5 * day}); got.Span != want {
		t.Fatalf("moved to %v, want %v", got.Span, want)
	}
}

func TestMoveItemSnapsBothEdges(t *testing.T) {
	b := fixture(t)

	// 13h..43h keeps neither edge nor duration on the day grid.
	got, err := b.MoveItem("a", timeline.Span{Start: 4*day + 13*timeline.Hour, End: 5*day + 19*timeline.Hour}, day)
	if err != nil {
		t.Fatal(err)
	}
	if want := (timeline.Span{Start: 5 * day, End: 6 * day}); got.Span != want {
		t.Fatalf("moved to %v, want %v", got.Span, want)
	}
	if got.Span.Start%day != 0 || got.Span.End%day != 0 {
		t.Fatalf("moved span %v is off the grid", got.Span)
	}
}

func TestMoveItemRejectsOverlap(t *testing.T) {
	b := fixture(t)
	before, _ := b.FindItem("a")

	_, err := b.MoveItem("a", timeline.Span{Start: 2*day + timeline.Hour, End: 3*day + timeline.Hour}, day)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	// The proposed span fits, but snapping pushes it into "b".
	_, err = b.MoveItem("a", timeline.Span{Start: day + 13*timeline.Hour, End: 2*day - timeline.Hour}, day)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap after snapping, got %v", err)
	}

	after, _ := b.FindItem("a")
	if after != before {
		t.Fatalf("rejected move changed the item: %v -> %v", before, after)
	}
}

func TestResizeItem(t *testing.T) {
	b := fixture(t)
	got, err := b.ResizeItem("a", timeline.Span{Start: timeline.Hour, End: day + timeline.Hour}, day)
	if err != nil {
		t.Fatal(err)
	}
	if want := (timeline.Span{Start: 0, End: 2 * day}); got.Span != want {
		t.Fatalf("resized to %v, want %v", got.Span, want)
	}

	if _, err := b.ResizeItem("a", timeline.Span{Start: 0, End: 2*day + 1}, day); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	if _, err := b.ResizeItem("a", timeline.Span{Start: day, End: 0}, day); !errors.Is(err, timeline.ErrNegativeSpan) {
		t.Fatalf("expected ErrNegativeSpan, got %v", err)
	}
	if _, err := b.ResizeItem("zzz", timeline.Span{}, day); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestReorderRow(t *testing.T) {
	b := fixture(t)
	if err := b.ReorderRow("g1", "r3", "r1"); err != nil {
		t.Fatal(err)
	}
	if got := rowOrder(t, b, "g1"); len(got) != 3 || got[0] != "r3" || got[1] != "r1" || got[2] != "r2" {
		t.Fatalf("order after moving r3 up = %v", got)
	}
	if err := b.ReorderRow("g1", "r3", "r2"); err != nil {
		t.Fatal(err)
	}
	if got := rowOrder(t, b, "g1"); got[0] != "r1" || got[1] != "r2" || got[2] != "r3" {
		t.Fatalf("order after moving r3 down = %v", got)
	}
	if err := b.ReorderRow("g1", "r1", "nope"); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	b := fixture(t)
	if err := b.RemoveItem("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.FindItem("b"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("item still present: %v", err)
	}
	if len(b.Items()) != 2 {
		t.Fatalf("expected 2 items left, got %d", len(b.Items()))
	}
	if err := b.RemoveItem("b"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	b := fixture(t)
	if err := b.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}

	row, _ := b.Row("g1", "r1")
	row.Items = append(row.Items, Item{ID: "bad", GroupID: "g1", RowID: "r1", Span: timeline.Span{Start: 0, End: 2 * day}})
	if err := b.Validate(); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}
