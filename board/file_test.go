package board

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	b := fixture(t)
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := b.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := rowOrder(t, loaded, "g1"); strings.Join(got, ",") != "r1,r2,r3" {
		t.Fatalf("row order lost: %v", got)
	}
	want, _ := b.FindItem("c")
	if got, err := loaded.FindItem("c"); err != nil || got != want {
		t.Fatalf("item c = %+v, %v", got, err)
	}
}

func TestDecodeRejectsOverlap(t *testing.T) {
	doc := `
groups:
  - id: g1
    rows:
      - id: r1
        group_id: g1
        items:
          - {id: a, group_id: g1, row_id: r1, span: {start: 0, end: 10}}
          - {id: b, group_id: g1, row_id: r1, span: {start: 5, end: 15}}
`
	if _, err := Decode(strings.NewReader(doc)); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}
