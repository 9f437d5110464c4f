package x12

// Loop association uses a fixed, documented lookahead window rather than a
// full X12 grammar. The bound keeps decoding deterministic; unusually long
// loops can fall outside it (a known limitation, intentionally preserved).
const (
	LookaheadForward  = 10
	LookaheadBackward = 5
)

// FindForward scans forward from the segment after `from` for a segment with
// the wanted tag, giving up at the window edge or when a stop tag (a new loop
// anchor such as NM1 or HL) is seen first. Returns the absolute index or -1.
func FindForward(segments []Segment, from int, want string, stops ...string) int {
	limit := from + LookaheadForward
	for i := from + 1; i < len(segments) && i <= limit; i++ {
		if segments[i].ID == want {
			return i
		}
		for _, stop := range stops {
			if segments[i].ID == stop {
				return -1
			}
		}
	}
	return -1
}

// FindBackward scans backward from the segment before `from`, bounded by the
// backward window, for a segment with the wanted tag.
func FindBackward(segments []Segment, from int, want string, stops ...string) int {
	limit := from - LookaheadBackward
	for i := from - 1; i >= 0 && i >= limit; i-- {
		if segments[i].ID == want {
			return i
		}
		for _, stop := range stops {
			if segments[i].ID == stop {
				return -1
			}
		}
	}
	return -1
}

// CollectLoop returns the segments of the loop anchored at index `anchor`:
// every following segment until the next anchor tag or end of stream.
func CollectLoop(segments []Segment, anchor int, anchorTags ...string) []Segment {
	var loop []Segment
	for i := anchor + 1; i < len(segments); i++ {
		for _, tag := range anchorTags {
			if segments[i].ID == tag {
				return loop
			}
		}
		loop = append(loop, segments[i])
	}
	return loop
}
