package render

// textBox is the estimated screen rectangle of a text label.
type textBox struct {
	Left, Right int
	Top, Bottom int
}

// estimateTextWidth estimates the width of text in pixels from its length.
// The average glyph is taken as 0.6 of the font size.
func estimateTextWidth(text string, fontSize int) int {
	avgCharWidth := float64(fontSize) * 0.6
	return int(float64(len([]rune(text))) * avgCharWidth)
}

// labelBox returns the box of a label centred on x with its baseline at y,
// padded by two pixels on each side.
func labelBox(text string, x, y, fontSize int) textBox {
	const padding = 2
	half := estimateTextWidth(text, fontSize)/2 + padding
	return textBox{
		Left:   x - half,
		Right:  x + half,
		Top:    y - fontSize - padding,
		Bottom: y + padding,
	}
}

// overlaps reports whether two boxes intersect. Boxes that only share an
// edge do not.
func (a textBox) overlaps(b textBox) bool {
	if a.Right <= b.Left || a.Left >= b.Right ||
		a.Bottom <= b.Top || a.Top >= b.Bottom {
		return false
	}
	return true
}

func collides(box textBox, placed []textBox) bool {
	for _, p := range placed {
		if box.overlaps(p) {
			return true
		}
	}
	return false
}
