// Package render draws a booking board as a static SVG document or as a
// terminal view.
package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"flightline/board"
	"flightline/internal/config"
	"flightline/internal/logging"
	"flightline/timeline"
)

// minGridSpacing is the closest two grid lines may be drawn, in pixels.
// Denser grids are skipped entirely.
const minGridSpacing = 4.0

// layout holds the vertical position of every group header and row, computed
// once before drawing.
type layout struct {
	axisY   int
	height  int
	headers []int   // y of each group header band
	rows    [][]int // y of each row, per group
}

func computeLayout(b *board.Board, cfg config.Config) layout {
	l := layout{axisY: cfg.Layout.MarginTop + cfg.Layout.AxisHeight}
	y := l.axisY
	for _, g := range b.Groups {
		y += cfg.Layout.GroupGap
		l.headers = append(l.headers, y)
		y += cfg.Layout.RowHeight / 2

		ys := make([]int, len(g.Rows))
		for i := range g.Rows {
			ys[i] = y
			y += cfg.Layout.RowHeight
		}
		l.rows = append(l.rows, ys)
	}
	l.height = y + cfg.Layout.MarginBottom
	return l
}

// SVG draws the board for the visible range r: row names in a sidebar, the
// time axis built from defs, grid lines every cfg.Grid.Delta, one bar per
// item clipped to r and a group envelope bar above each group. Items still
// being created, whether flagged on the board or passed as pending, are
// drawn dashed.
func SVG(b *board.Board, r timeline.Range, defs []timeline.MarkerDefinition, cfg config.Config, pending ...board.Item) (string, error) {
	loc, err := cfg.Location()
	if err != nil {
		return "", err
	}

	timelineX := cfg.Layout.MarginLeft + cfg.Layout.SidebarWidth
	timelineWidth := cfg.Layout.Width - timelineX - cfg.Layout.MarginRight
	scale, err := timeline.NewScale(r, float64(timelineWidth), float64(timelineX))
	if err != nil {
		return "", fmt.Errorf("error building scale: %w", err)
	}

	markers, err := timeline.GenerateMarkers(r, defs, scale.ValueToPixels, loc)
	if err != nil {
		return "", fmt.Errorf("error generating markers: %w", err)
	}
	markers = visibleMarkers(markers, r)

	l := computeLayout(b, cfg)
	logging.Log.Debugf("Rendering %d groups over %s: %d markers, height %d", len(b.Groups), r, len(markers), l.height)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.group-label { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.row-label { font-family: %s; font-size: %dpx; fill: %s; }
.marker-label { font-family: %s; fill: %s; }
</style>
</defs>
`, cfg.Layout.Width, l.height, cfg.Colors.Background,
		cfg.Font.Family, cfg.Font.Size+1, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size, cfg.Colors.Text,
		cfg.Font.Family, cfg.Colors.Text))

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
		cfg.Layout.MarginLeft, l.axisY, cfg.Layout.SidebarWidth, l.height-l.axisY-cfg.Layout.MarginBottom, cfg.Colors.Sidebar))

	drawGrid(&svg, scale, l, cfg)
	drawAxis(&svg, scale, markers, l, cfg)

	for gi := range b.Groups {
		g := &b.Groups[gi]
		drawGroupHeader(&svg, g, scale, l.headers[gi], cfg)
		for ri := range g.Rows {
			row := &g.Rows[ri]
			y := l.rows[gi][ri]
			drawRow(&svg, row, scale, y, cfg)
			for _, it := range pending {
				if it.GroupID == g.ID && it.RowID == row.ID {
					it.Creating = true
					drawItem(&svg, it, scale, y, cfg)
				}
			}
		}
	}

	svg.WriteString("</svg>")
	return svg.String(), nil
}

func drawGrid(svg *strings.Builder, scale timeline.Scale, l layout, cfg config.Config) {
	delta := cfg.DeltaMs()
	if scale.ValueToPixels(delta) < minGridSpacing {
		logging.Log.Debugf("Skipping grid: delta %dms is under %.0fpx", delta, minGridSpacing)
		return
	}
	lines, err := timeline.GridLines(scale.Range, delta)
	if err != nil {
		logging.Log.Debugf("Skipping grid: %v", err)
		return
	}
	bottom := l.height - cfg.Layout.MarginBottom
	for _, t := range lines {
		x := scale.X(t)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, l.axisY, x, bottom, cfg.Colors.Grid))
	}
}

// drawAxis draws the baseline and one tick per marker. Coarse markers get
// taller ticks and bolder labels, and are placed first so that a fine label
// colliding with an already drawn one is dropped.
func drawAxis(svg *strings.Builder, scale timeline.Scale, markers []timeline.Marker, l layout, cfg config.Config) {
	left := scale.Offset
	right := scale.Offset + scale.Width
	svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
		left, l.axisY, right, l.axisY, cfg.Colors.Axis))

	order := make([]int, len(markers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return markers[order[i]].Weight > markers[order[j]].Weight
	})

	tickRoom := float64(cfg.Layout.AxisHeight) / 2
	var placed []textBox
	for _, i := range order {
		m := markers[i]
		x := scale.Offset + m.PixelOffset
		tick := tickRoom * m.Weight
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, float64(l.axisY)-tick, x, l.axisY, cfg.Colors.Axis))

		if m.Label == "" {
			continue
		}
		fontSize := labelFontSize(cfg.Font.Size, m.Weight)
		y := l.axisY - int(tick) - 4
		box := labelBox(m.Label, int(x), y, fontSize)
		if collides(box, placed) {
			logging.Log.Debugf("Dropping marker label %q at x=%.1f", m.Label, x)
			continue
		}
		placed = append(placed, box)
		svg.WriteString(fmt.Sprintf(`<text class="marker-label" x="%.1f" y="%d" text-anchor="middle" font-size="%d" font-weight="%d">%s</text>`+"\n",
			x, y, fontSize, fontWeight(m.Weight), escapeXML(m.Label)))
	}
}

// visibleMarkers drops the ticks before r.Start. The marker walk starts on
// the grid line at or before the range start, which would land in the
// sidebar.
func visibleMarkers(markers []timeline.Marker, r timeline.Range) []timeline.Marker {
	out := markers[:0:0]
	for _, m := range markers {
		if m.Time < r.Start {
			continue
		}
		out = append(out, m)
	}
	return out
}

// labelFontSize shrinks labels of fine markers down to two thirds of the
// base size.
func labelFontSize(base int, weight float64) int {
	size := int(float64(base) * (2 + weight) / 3)
	if size < 1 {
		size = 1
	}
	return size
}

// fontWeight maps a marker weight onto the CSS 100-900 scale, rounded to
// the nearest hundred.
func fontWeight(weight float64) int {
	w := int(300+600*weight+50) / 100 * 100
	if w > 900 {
		w = 900
	}
	return w
}

func drawGroupHeader(svg *strings.Builder, g *board.Group, scale timeline.Scale, y int, cfg config.Config) {
	band := cfg.Layout.RowHeight / 2
	svg.WriteString(fmt.Sprintf(`<text class="group-label" x="%d" y="%d">%s</text>`+"\n",
		cfg.Layout.MarginLeft+6, y+band-4, escapeXML(g.Title())))

	envelope, ok := g.Span()
	if !ok {
		return
	}
	clipped, ok := scale.Clip(envelope)
	if !ok {
		return
	}
	x1, x2 := scale.X(clipped.Start), scale.X(clipped.End)
	svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%d" width="%.1f" height="%d" rx="3" fill="%s" fill-opacity="0.6"/>`+"\n",
		x1, y+band/4, x2-x1, band/2, cfg.Colors.Envelope))
}

func drawRow(svg *strings.Builder, row *board.Row, scale timeline.Scale, y int, cfg config.Config) {
	mid := y + cfg.Layout.RowHeight/2
	svg.WriteString(fmt.Sprintf(`<text class="row-label" x="%d" y="%d" dominant-baseline="middle">%s</text>`+"\n",
		cfg.Layout.MarginLeft+12, mid, escapeXML(row.Title())))
	svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1" stroke-opacity="0.4"/>`+"\n",
		scale.Offset, y+cfg.Layout.RowHeight, scale.Offset+scale.Width, y+cfg.Layout.RowHeight, cfg.Colors.Lane))

	for _, it := range row.Items {
		drawItem(svg, it, scale, y, cfg)
	}
}

// drawItem draws one booking bar. Items outside the visible range are
// skipped and items crossing its edges are cut at the edge.
func drawItem(svg *strings.Builder, it board.Item, scale timeline.Scale, y int, cfg config.Config) {
	clipped, ok := scale.Clip(it.Span)
	if !ok {
		return
	}
	x1, x2 := scale.X(clipped.Start), scale.X(clipped.End)
	width := x2 - x1
	if width < 1 {
		width = 1
	}
	top := y + cfg.Layout.ItemPadding
	height := cfg.Layout.RowHeight - 2*cfg.Layout.ItemPadding

	fill, extra := cfg.Colors.Item, ""
	if it.Creating {
		fill, extra = cfg.Colors.Creating, ` stroke-dasharray="4 3" fill-opacity="0.5"`
	}
	svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%d" width="%.1f" height="%d" rx="4" fill="%s" stroke="%s" stroke-width="1"%s><title>%s</title></rect>`+"\n",
		x1, top, width, height, fill, cfg.Colors.ItemStroke, extra, escapeXML(it.ID)))
}

// escapeXML escapes the five XML special characters so arbitrary names can
// be embedded in SVG text.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// OutputFilename returns output when set, otherwise the input file name with
// its extension replaced by .svg ("board.yaml" becomes "board.svg").
func OutputFilename(input, output string) string {
	if output != "" {
		return output
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}
