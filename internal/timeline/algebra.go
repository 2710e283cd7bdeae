package timeline

import "sort"

// Segment is the portion of a session clipped to a day window. Session
// holds the index of the originating session in the store's slice.
type Segment struct {
	StartMS int64
	EndMS   int64
	Session int
	Tag     string
}

// Gap is a break interval: part of the day not covered by any segment,
// up to the lesser of "now" and day end.
type Gap struct {
	StartMS int64
	EndMS   int64
}

// MinuteRange is a merged whole-minute offset range from day start,
// clamped to [0, 1440]. Used for aggregate and visual reporting only;
// exact elapsed time comes from WorkedSeconds.
type MinuteRange struct {
	Start int
	End   int
}

// SegmentsForDay clips every session to the day window, keeps the
// strictly positive remainders, and returns them sorted by start.
func SegmentsForDay(day Day, now int64, sessions []Session) []Segment {
	var segs []Segment
	for i, sess := range sessions {
		s, e := sess.Start, sess.EffectiveEnd(now)
		if e <= day.Start || s >= day.End {
			continue
		}
		a, b := max64(s, day.Start), min64(e, day.End)
		if b > a {
			segs = append(segs, Segment{StartMS: a, EndMS: b, Session: i, Tag: sess.Tag})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].StartMS < segs[j].StartMS })
	return segs
}

// GapsForDay walks the sorted segments and emits the complement within
// [day.Start, min(now, day.End)).
func GapsForDay(day Day, now int64, segs []Segment) []Gap {
	clampEnd := day.ClampEnd(now)
	var gaps []Gap
	cursor := day.Start
	for _, seg := range segs {
		if seg.StartMS > cursor {
			gaps = append(gaps, Gap{StartMS: cursor, EndMS: min64(seg.StartMS, clampEnd)})
		}
		cursor = max64(cursor, seg.EndMS)
		if cursor >= clampEnd {
			break
		}
	}
	if cursor < clampEnd {
		gaps = append(gaps, Gap{StartMS: cursor, EndMS: clampEnd})
	}
	return gaps
}

// MinuteRangesForDay converts segments to whole-minute offsets (floor for
// start, ceil for end), clamps to the day, and merges ranges that touch
// or overlap. Sub-minute precision is intentionally lost here.
func MinuteRangesForDay(day Day, segs []Segment) []MinuteRange {
	ranges := make([]MinuteRange, 0, len(segs))
	for _, seg := range segs {
		ranges = append(ranges, MinuteRange{
			Start: clampInt(int(floorDiv(seg.StartMS-day.Start, MsPerMinute)), 0, 1440),
			End:   clampInt(int(ceilDiv(seg.EndMS-day.Start, MsPerMinute)), 0, 1440),
		})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	var merged []MinuteRange
	for _, r := range ranges {
		if len(merged) == 0 || r.Start > merged[len(merged)-1].End {
			merged = append(merged, r)
		} else if r.End > merged[len(merged)-1].End {
			merged[len(merged)-1].End = r.End
		}
	}
	return merged
}

// WorkedSeconds sums second-resolution elapsed time over the raw clipped
// session bounds for the day.
func WorkedSeconds(day Day, now int64, sessions []Session) float64 {
	var total float64
	for _, sess := range sessions {
		a := max64(sess.Start, day.Start)
		b := min64(sess.EffectiveEnd(now), day.End)
		if b > a {
			total += float64(b-a) / 1000
		}
	}
	return total
}

// GapAt returns the gap containing the instant, if any.
func GapAt(gaps []Gap, ms int64) (Gap, bool) {
	for _, g := range gaps {
		if ms >= g.StartMS && ms <= g.EndMS {
			return g, true
		}
	}
	return Gap{}, false
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
