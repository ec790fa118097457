package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flightline/timeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.DeltaMs() != timeline.Day {
		t.Errorf("default delta = %d", c.DeltaMs())
	}
	if len(c.MarkerDefinitions()) != len(timeline.DefaultMarkerDefinitions()) {
		t.Errorf("default config should use the stock markers")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  delta: 12h
  time_zone: Europe/Berlin
layout:
  width: 900
markers:
  - period: 24h
    label: Mon
  - period: 1h
    max_range: 24h
    label: hour24
  - period: 15m
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Grid.Delta != 12*time.Hour {
		t.Errorf("delta = %s", c.Grid.Delta)
	}
	if c.Layout.Width != 900 || c.Layout.RowHeight != 40 {
		t.Errorf("layout not merged with defaults: %+v", c.Layout)
	}
	loc, err := c.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("location = %v, %v", loc, err)
	}

	defs := c.MarkerDefinitions()
	if len(defs) != 3 {
		t.Fatalf("got %d marker definitions", len(defs))
	}
	if defs[1].MaxRangeSize != timeline.Day || defs[1].Label == nil {
		t.Errorf("hour definition = %+v", defs[1])
	}
	if got := defs[1].Label(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); got != "24" {
		t.Errorf("hour24 label at midnight = %q", got)
	}
	if defs[2].Label != nil {
		t.Errorf("definition without label should have no label func")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero delta":   "grid:\n  delta: 0s\n",
		"bad zone":     "grid:\n  time_zone: Mars/Olympus\n",
		"bad view":     "grid:\n  view: year\n",
		"zero period":  "markers:\n  - period: 0s\n",
		"narrow board": "layout:\n  width: 100\n",
		"bad yaml":     "grid: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
