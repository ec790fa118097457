// Package config loads the YAML configuration of the flightline CLI.
package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"flightline/timeline"
)

// LabelHour24 is the marker label keyword for a 1-24 hour clock. Any other
// non-empty label is used as a Go time layout.
const LabelHour24 = "hour24"

// MarkerSpec is the YAML form of a timeline.MarkerDefinition.
type MarkerSpec struct {
	Period   time.Duration `yaml:"period"`    // Tick interval, e.g. "24h", "15m"
	MinRange time.Duration `yaml:"min_range"` // Only tick when the visible range is at least this long (0 = no bound)
	MaxRange time.Duration `yaml:"max_range"` // Only tick when the visible range is at most this long (0 = no bound)
	Label    string        `yaml:"label"`     // Go time layout ("Mon", "4") or "hour24"; empty for an unlabelled tick
}

// Config is the complete configuration of board rendering, grid snapping and
// demo data placement. It maps directly to the YAML file given with --config.
//
// Key patterns:
//   - grid.delta is the snapping granularity for create, move and resize
//   - an empty markers list falls back to timeline.DefaultMarkerDefinitions
//   - grid.time_zone drives day rounding and marker labels ("Local" or an IANA name)
type Config struct {
	Font struct {
		Family string `yaml:"family"` // Font family for all text elements
		Size   int    `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"`  // SVG background
		Sidebar    string `yaml:"sidebar"`     // Sidebar background behind row names
		Axis       string `yaml:"axis"`        // Axis baseline and marker ticks
		Grid       string `yaml:"grid"`        // Vertical grid lines inside rows
		Text       string `yaml:"text"`        // Labels
		Lane       string `yaml:"lane"`        // Row lane background
		Item       string `yaml:"item"`        // Committed item fill
		ItemStroke string `yaml:"item_stroke"` // Committed item border
		Creating   string `yaml:"creating"`    // Fill of an item still being created
		Envelope   string `yaml:"envelope"`    // Group envelope bar
	} `yaml:"colors"`
	Layout struct {
		Width        int `yaml:"width"`         // Total SVG width in pixels
		SidebarWidth int `yaml:"sidebar_width"` // Width of the row name column
		AxisHeight   int `yaml:"axis_height"`   // Height of the time axis strip
		RowHeight    int `yaml:"row_height"`    // Height of one flight row
		GroupGap     int `yaml:"group_gap"`     // Vertical gap above each group header
		ItemPadding  int `yaml:"item_padding"`  // Vertical inset of item bars inside a row
		MarginTop    int `yaml:"margin_top"`
		MarginBottom int `yaml:"margin_bottom"`
		MarginLeft   int `yaml:"margin_left"`
		MarginRight  int `yaml:"margin_right"`
	} `yaml:"layout"`
	Grid struct {
		Delta    time.Duration `yaml:"delta"`     // Snapping granularity
		TimeZone string        `yaml:"time_zone"` // Calendar used for day rounding and labels
		View     string        `yaml:"view"`      // Default view: week, month or quarter
	} `yaml:"grid"`
	Markers   []MarkerSpec `yaml:"markers"`
	Placement struct {
		MinLength   time.Duration `yaml:"min_length"`   // Shortest generated booking
		MaxLength   time.Duration `yaml:"max_length"`   // Longest generated booking
		MaxAttempts int           `yaml:"max_attempts"` // Rejection sampling cap per booking
	} `yaml:"placement"`
}

// Default returns the configuration used when no file is given: a 1400px
// wide board snapping to whole days in UTC, the stock axis markers and
// 1h-6h demo bookings.
func Default() Config {
	var c Config
	c.Font.Family = "Arial, sans-serif"
	c.Font.Size = 12

	c.Colors.Background = "#ffffff"
	c.Colors.Sidebar = "#f1f3f4"
	c.Colors.Axis = "#d32f2f"
	c.Colors.Grid = "#e0e0e0"
	c.Colors.Text = "#333333"
	c.Colors.Lane = "#9e9e9e"
	c.Colors.Item = "#1b5e20"
	c.Colors.ItemStroke = "#004d40"
	c.Colors.Creating = "#2e7d32"
	c.Colors.Envelope = "#4285f4"

	c.Layout.Width = 1400
	c.Layout.SidebarWidth = 160
	c.Layout.AxisHeight = 50
	c.Layout.RowHeight = 40
	c.Layout.GroupGap = 24
	c.Layout.ItemPadding = 6
	c.Layout.MarginTop = 20
	c.Layout.MarginBottom = 20
	c.Layout.MarginLeft = 20
	c.Layout.MarginRight = 20

	c.Grid.Delta = 24 * time.Hour
	c.Grid.TimeZone = "UTC"
	c.Grid.View = "week"

	c.Placement.MinLength = time.Hour
	c.Placement.MaxLength = 6 * time.Hour
	c.Placement.MaxAttempts = timeline.DefaultMaxAttempts
	return c
}

// Load reads configuration from a YAML file on top of Default. An empty path
// returns the defaults; keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values the core refuses to work with.
func (c Config) Validate() error {
	if c.Grid.Delta < time.Millisecond {
		return fmt.Errorf("grid.delta must be at least 1ms, got %s", c.Grid.Delta)
	}
	if c.Layout.Width <= c.Layout.SidebarWidth+c.Layout.MarginLeft+c.Layout.MarginRight {
		return fmt.Errorf("layout.width %d leaves no room for the timeline", c.Layout.Width)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := timeline.ParseView(c.Grid.View); err != nil {
		return fmt.Errorf("grid.view: %w", err)
	}
	for i, m := range c.Markers {
		if m.Period < time.Millisecond {
			return fmt.Errorf("markers[%d].period must be at least 1ms, got %s", i, m.Period)
		}
	}
	if c.Placement.MinLength < 0 || c.Placement.MaxLength < c.Placement.MinLength {
		return fmt.Errorf("placement lengths out of order: min=%s max=%s", c.Placement.MinLength, c.Placement.MaxLength)
	}
	return nil
}

// Location resolves grid.time_zone.
func (c Config) Location() (*time.Location, error) {
	if c.Grid.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Grid.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("grid.time_zone: %w", err)
	}
	return loc, nil
}

// DeltaMs returns the grid delta in milliseconds.
func (c Config) DeltaMs() int64 {
	return timeline.Ms(c.Grid.Delta)
}

// View returns the parsed default view.
func (c Config) View() timeline.View {
	v, err := timeline.ParseView(c.Grid.View)
	if err != nil {
		return timeline.ViewWeek
	}
	return v
}

// MarkerDefinitions converts the markers section. An empty section yields the
// stock axis.
func (c Config) MarkerDefinitions() []timeline.MarkerDefinition {
	if len(c.Markers) == 0 {
		return timeline.DefaultMarkerDefinitions()
	}
	defs := make([]timeline.MarkerDefinition, 0, len(c.Markers))
	for _, m := range c.Markers {
		def := timeline.MarkerDefinition{
			Period:       timeline.Ms(m.Period),
			MinRangeSize: timeline.Ms(m.MinRange),
			MaxRangeSize: timeline.Ms(m.MaxRange),
		}
		switch m.Label {
		case "":
		case LabelHour24:
			def.Label = timeline.LabelHour24
		default:
			def.Label = timeline.LabelLayout(m.Label)
		}
		defs = append(defs, def)
	}
	return defs
}
