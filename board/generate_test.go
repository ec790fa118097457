package board

import (
	"errors"
	"strings"
	"testing"

	"flightline/timeline"
)

func TestGenerate(t *testing.T) {
	b, err := Generate(timeline.NewPlacer(1), GenerateOptions{
		Groups:       2,
		RowsPerGroup: 3,
		ItemsPerRow:  4,
		Range:        timeline.Range{Start: 0, End: 14 * day},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("generated board invalid: %v", err)
	}
	if len(b.Groups) != 2 || len(b.Groups[1].Rows) != 3 || len(b.Items()) != 24 {
		t.Fatalf("unexpected shape: %d groups, %d items", len(b.Groups), len(b.Items()))
	}
	if !strings.HasPrefix(b.Groups[0].ID, "group-") || !strings.HasPrefix(b.Groups[0].Rows[0].ID, "flight-") {
		t.Fatalf("unexpected ids %s %s", b.Groups[0].ID, b.Groups[0].Rows[0].ID)
	}
	for _, it := range b.Items() {
		if it.Span.Start < 0 || it.Span.End > 14*day {
			t.Fatalf("item %s escapes range: %v", it.ID, it.Span)
		}
	}
}

func TestGenerateCrowdedRow(t *testing.T) {
	p := timeline.NewPlacer(3)
	p.MaxAttempts = 20
	_, err := Generate(p, GenerateOptions{
		Groups:       1,
		RowsPerGroup: 1,
		ItemsPerRow:  3,
		Range:        timeline.Range{Start: 0, End: day},
		MinLength:    day,
		MaxLength:    day,
	})
	if !errors.Is(err, timeline.ErrCannotPlace) {
		t.Fatalf("expected ErrCannotPlace, got %v", err)
	}
}
