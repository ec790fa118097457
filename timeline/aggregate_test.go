package timeline

import "testing"

func TestAggregate(t *testing.T) {
	got, ok := Aggregate([]Span{{10, 20}, {5, 30}, {15, 18}})
	if !ok {
		t.Fatal("expected data")
	}
	if want := (Span{5, 30}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, ok := Aggregate(nil); ok {
		t.Fatal("empty input must report no data")
	}

	// A real span anchored at epoch zero is not confused with "no data".
	got, ok = Aggregate([]Span{{0, 0}})
	if !ok || got != (Span{0, 0}) {
		t.Fatalf("got %v (%v)", got, ok)
	}
}
