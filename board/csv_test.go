package board

import (
	"errors"
	"strings"
	"testing"
	"time"

	"flightline/timeline"
)

func TestImportCSV(t *testing.T) {
	data := `Group,Row,Start,End,ID,Row_Name
spring,fl-1,2024-03-01,2024-03-03,i1,Radio
spring,fl-1,2024-03-03,2024-03-04 12:00,i2,Radio
spring,fl-2,2024-03-02T00:00:00Z,2024-03-05T00:00:00Z,,TV
summer,fl-3,06/01/2024,06/02/2024,i4,
`
	b, err := ImportCSV(strings.NewReader(data), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Groups) != 2 || len(b.Items()) != 4 {
		t.Fatalf("got %d groups, %d items", len(b.Groups), len(b.Items()))
	}
	row, err := b.Row("spring", "fl-1")
	if err != nil {
		t.Fatal(err)
	}
	if row.Name != "Radio" || len(row.Items) != 2 {
		t.Fatalf("row fl-1 = %+v", row)
	}
	it, _ := b.FindItem("i2")
	wantEnd := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC).UnixMilli()
	if it.Span.End != wantEnd {
		t.Fatalf("i2 end = %s", timeline.FromMs(it.Span.End, time.UTC))
	}
}

func TestImportCSVErrors(t *testing.T) {
	tests := map[string]struct {
		data string
		want error
	}{
		"missing column": {"group,row,start\n", nil},
		"bad timestamp":  {"group,row,start,end\ng,r,yesterday,2024-01-01\n", nil},
		"inverted":       {"group,row,start,end\ng,r,2024-01-02,2024-01-01\n", timeline.ErrNegativeSpan},
		"overlap":        {"group,row,start,end\ng,r,2024-01-01,2024-01-03\ng,r,2024-01-02,2024-01-04\n", ErrOverlap},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ImportCSV(strings.NewReader(tt.data), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
