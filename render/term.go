package render

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"flightline/board"
	"flightline/internal/logging"
	"flightline/timeline"
)

// ErrTooNarrow is returned when the terminal cannot fit the sidebar and a
// usable bar.
var ErrTooNarrow = errors.New("terminal too narrow for the board")

const (
	minBarWidth   = 10
	maxLabelWidth = 24
)

var (
	termAxis     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	termGroup    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	termEnvelope = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	termRow      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	termItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	termCreating = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	termEmpty    = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

// Terminal draws the board as text, one line per row, width columns wide.
// Labels are rendered in loc. Items are drawn with full blocks, items still
// being created with shaded ones.
func Terminal(b *board.Board, r timeline.Range, defs []timeline.MarkerDefinition, width int, loc *time.Location) (string, error) {
	labelWidth := 0
	for gi := range b.Groups {
		g := &b.Groups[gi]
		labelWidth = max(labelWidth, len([]rune(g.Title())))
		for ri := range g.Rows {
			labelWidth = max(labelWidth, len([]rune(g.Rows[ri].Title()))+2)
		}
	}
	labelWidth = min(labelWidth, maxLabelWidth) + 1

	barWidth := width - labelWidth
	if barWidth < minBarWidth {
		return "", fmt.Errorf("%w: %d columns", ErrTooNarrow, width)
	}
	scale, err := timeline.NewScale(r, float64(barWidth), 0)
	if err != nil {
		return "", err
	}
	markers, err := timeline.GenerateMarkers(r, defs, scale.ValueToPixels, loc)
	if err != nil {
		return "", err
	}
	markers = visibleMarkers(markers, r)

	pad := strings.Repeat(" ", labelWidth)
	ticks, labels := axisLines(markers, barWidth)
	lines := []string{
		pad + termAxis.Render(labels),
		pad + termAxis.Render(ticks),
	}

	for gi := range b.Groups {
		g := &b.Groups[gi]
		envelope := strings.Repeat(" ", barWidth)
		if s, ok := g.Span(); ok {
			envelope = fillCells(scale, barWidth, []timeline.Span{s}, '━', ' ')
		}
		lines = append(lines, termGroup.Render(fitLabel(g.Title(), labelWidth))+termEnvelope.Render(envelope))

		for ri := range g.Rows {
			row := &g.Rows[ri]
			lines = append(lines, termRow.Render(fitLabel("  "+row.Title(), labelWidth))+rowBar(row, scale, barWidth))
		}
	}
	logging.Log.Debugf("Terminal view: %d lines, bar width %d", len(lines), barWidth)
	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

// column maps an instant onto a bar cell, clamped to the bar.
func column(scale timeline.Scale, t int64, barWidth int) int {
	c := int(math.Floor(scale.X(t)))
	return max(0, min(c, barWidth-1))
}

// fillCells draws spans onto a bar of blank cells. Every span covers at
// least one cell.
func fillCells(scale timeline.Scale, barWidth int, spans []timeline.Span, fill, blank rune) string {
	cells := []rune(strings.Repeat(string(blank), barWidth))
	for _, s := range spans {
		clipped, ok := scale.Clip(s)
		if !ok {
			continue
		}
		from := column(scale, clipped.Start, barWidth)
		to := max(from, int(math.Ceil(scale.X(clipped.End)))-1)
		to = min(to, barWidth-1)
		for c := from; c <= to; c++ {
			cells[c] = fill
		}
	}
	return string(cells)
}

func rowBar(row *board.Row, scale timeline.Scale, barWidth int) string {
	var committed, creating []timeline.Span
	for _, it := range row.Items {
		if it.Creating {
			creating = append(creating, it.Span)
		} else {
			committed = append(committed, it.Span)
		}
	}
	cells := []rune(fillCells(scale, barWidth, committed, '█', '·'))
	for c, r := range []rune(fillCells(scale, barWidth, creating, '▒', 0)) {
		if r != 0 {
			cells[c] = r
		}
	}

	var bar strings.Builder
	for _, c := range cells {
		switch c {
		case '█':
			bar.WriteString(termItem.Render(string(c)))
		case '▒':
			bar.WriteString(termCreating.Render(string(c)))
		default:
			bar.WriteString(termEmpty.Render(string(c)))
		}
	}
	return bar.String()
}

// axisLines returns the tick line and the label line above it. Labels are
// written coarse first and a label that would touch one already written is
// left out.
func axisLines(markers []timeline.Marker, barWidth int) (string, string) {
	ticks := []rune(strings.Repeat("─", barWidth))
	labels := []rune(strings.Repeat(" ", barWidth))
	taken := make([]bool, barWidth)

	order := make([]int, len(markers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return markers[order[i]].Weight > markers[order[j]].Weight
	})

	for _, i := range order {
		m := markers[i]
		c := max(0, min(int(math.Floor(m.PixelOffset)), barWidth-1))
		if m.Weight == 1 {
			ticks[c] = '┬'
		} else if ticks[c] == '─' {
			ticks[c] = '╌'
		}

		text := []rune(m.Label)
		if len(text) == 0 || c+len(text) > barWidth {
			continue
		}
		from, to := max(0, c-1), min(barWidth, c+len(text)+1)
		free := true
		for k := from; k < to; k++ {
			if taken[k] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for k, r := range text {
			labels[c+k] = r
			taken[c+k] = true
		}
	}
	return string(ticks), string(labels)
}

// fitLabel pads or truncates a label to exactly width cells.
func fitLabel(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-2]) + "… "
	}
	return s + strings.Repeat(" ", width-len(runes))
}
