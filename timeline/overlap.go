package timeline

// Overlaps reports whether candidate collides with existing.
//
// The test is asymmetric. candidate overlaps existing when
//   - candidate starts inside [existing.Start, existing.End), or
//   - candidate ends inside (existing.Start, existing.End], or
//   - candidate strictly engulfs existing.
//
// Two spans that only share a boundary instant do not overlap, so items can
// be booked back to back.
func Overlaps(candidate, existing Span) bool {
	startsInside := candidate.Start >= existing.Start && candidate.Start < existing.End
	endsInside := candidate.End > existing.Start && candidate.End <= existing.End
	engulfs := candidate.Start < existing.Start && candidate.End > existing.End
	return startsInside || endsInside || engulfs
}

// IsOverlapping reports whether candidate overlaps any span in existing.
// An empty existing list never overlaps.
func IsOverlapping(candidate Span, existing []Span) bool {
	_, found := FirstOverlap(candidate, existing)
	return found
}

// FirstOverlap returns the index of the first span in existing that
// candidate overlaps.
func FirstOverlap(candidate Span, existing []Span) (int, bool) {
	for i, s := range existing {
		if Overlaps(candidate, s) {
			return i, true
		}
	}
	return -1, false
}
