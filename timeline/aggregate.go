package timeline

// Aggregate returns the envelope of spans: the earliest start and the latest
// end. The boolean is false when spans is empty, in which case the returned
// span carries no meaning.
func Aggregate(spans []Span) (Span, bool) {
	if len(spans) == 0 {
		return Span{}, false
	}
	env := spans[0]
	for _, s := range spans[1:] {
		if s.Start < env.Start {
			env.Start = s.Start
		}
		if s.End > env.End {
			env.End = s.End
		}
	}
	return env, true
}
