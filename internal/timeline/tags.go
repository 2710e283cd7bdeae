package timeline

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var defaultNameRe = regexp.MustCompile(`(?i)^Session\s+(\d+)\b`)

// anchorSlackMS tolerates legacy break logs whose bounds drifted slightly
// from the gap they were recorded against.
const anchorSlackMS int64 = 1000

// AssignDefaultNames gives every blank-tagged session that intersects the
// day a "Session N" name, choosing the lowest unused number so a new name
// never collides with a still-present custom or auto name. Ordering is by
// each session's effective start within the window. Reports whether any
// session changed.
func (st *Store) AssignDefaultNames(day Day) bool {
	now := st.NowMS()

	type indexed struct {
		idx   int
		start int64
	}
	var today []indexed
	for i, s := range st.Sessions {
		if s.EffectiveEnd(now) > day.Start && s.Start < day.End {
			today = append(today, indexed{idx: i, start: max64(s.Start, day.Start)})
		}
	}
	sort.Slice(today, func(i, j int) bool { return today[i].start < today[j].start })

	used := make(map[int]bool)
	for _, t := range today {
		m := defaultNameRe.FindStringSubmatch(st.Sessions[t.idx].Tag)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			used[n] = true
		}
	}

	changed := false
	next := 1
	for _, t := range today {
		if strings.TrimSpace(st.Sessions[t.idx].Tag) != "" {
			continue
		}
		for used[next] {
			next++
		}
		used[next] = true
		st.Sessions[t.idx].Tag = fmt.Sprintf("Session %d", next)
		changed = true
	}
	return changed
}

// RealignBreakLogs recomputes the day's gaps and snaps every break log
// whose anchor falls inside the window to the gap containing that anchor.
// Logs whose anchor no longer lands in any gap (the time was consumed by
// a resized or added session) are deleted. Reports whether anything moved.
func (st *Store) RealignBreakLogs(day Day) bool {
	now := st.NowMS()
	segs := SegmentsForDay(day, now, st.Sessions)
	gaps := GapsForDay(day, now, segs)
	live := day.ClampEnd(now)

	changed := false
	kept := st.BreakLogs[:0:0]
	for _, b := range st.BreakLogs {
		if b.TagTS == 0 {
			b.TagTS = (b.Start + b.End) / 2
			changed = true
		}
		if b.TagTS < day.Start || b.TagTS > live {
			kept = append(kept, b)
			continue
		}
		gap, ok := GapAt(gaps, b.TagTS)
		if !ok {
			changed = true
			continue
		}
		if b.Start != gap.StartMS || b.End != gap.EndMS {
			b.Start, b.End = gap.StartMS, gap.EndMS
			changed = true
		}
		kept = append(kept, b)
	}
	st.BreakLogs = kept
	return changed
}

// FindBreakLog locates the log tagging the gap [gapStart, gapEnd] around
// instant t. An anchor inside the gap wins; otherwise a bounds-overlap
// heuristic with slack tolerates legacy records lacking an anchor.
// Returns the index into BreakLogs, or -1.
func (st *Store) FindBreakLog(gapStart, gapEnd, t int64) int {
	for i, b := range st.BreakLogs {
		if b.TagTS != 0 && b.TagTS >= gapStart && b.TagTS <= gapEnd {
			return i
		}
	}
	for i, b := range st.BreakLogs {
		if b.Start <= t && b.End >= t && b.Start >= gapStart-anchorSlackMS && b.End <= gapEnd+anchorSlackMS {
			return i
		}
	}
	return -1
}

// TagBreak records (or retags) the break log for the gap around t. A
// blank tag deletes an existing log. Reports whether anything changed.
func (st *Store) TagBreak(day Day, t int64, tag string) bool {
	now := st.NowMS()
	if t < day.Start || t > day.ClampEnd(now) {
		return false
	}
	segs := SegmentsForDay(day, now, st.Sessions)
	gap, ok := GapAt(GapsForDay(day, now, segs), t)
	if !ok {
		return false
	}
	tag = strings.TrimSpace(tag)
	if i := st.FindBreakLog(gap.StartMS, gap.EndMS, t); i >= 0 {
		if tag == "" {
			st.BreakLogs = append(st.BreakLogs[:i], st.BreakLogs[i+1:]...)
			return true
		}
		st.BreakLogs[i].Tag = tag
		if st.BreakLogs[i].TagTS == 0 {
			st.BreakLogs[i].TagTS = t
		}
		st.BreakLogs[i].Start, st.BreakLogs[i].End = gap.StartMS, gap.EndMS
		return true
	}
	if tag == "" {
		return false
	}
	st.BreakLogs = append(st.BreakLogs, BreakLog{Start: gap.StartMS, End: gap.EndMS, Tag: tag, TagTS: t})
	return true
}

// TagSession sets a session's tag. A blank tag clears it and restores
// default naming for the day.
func (st *Store) TagSession(day Day, sessionIndex int, tag string) bool {
	if sessionIndex < 0 || sessionIndex >= len(st.Sessions) {
		return false
	}
	st.Sessions[sessionIndex].Tag = strings.TrimSpace(tag)
	if st.Sessions[sessionIndex].Tag == "" {
		st.AssignDefaultNames(day)
	}
	return true
}

// TagTotal pairs a tag with its accumulated time for the day.
type TagTotal struct {
	Tag string
	MS  int64
}

// WorkTagTotals accumulates per-tag worked time inside the day, sorted
// by descending duration.
func (st *Store) WorkTagTotals(day Day) []TagTotal {
	now := st.NowMS()
	totals := make(map[string]int64)
	for _, sess := range st.Sessions {
		a := max64(sess.Start, day.Start)
		b := min64(sess.EffectiveEnd(now), day.End)
		if b <= a {
			continue
		}
		tag := strings.TrimSpace(sess.Tag)
		if tag == "" {
			continue
		}
		totals[tag] += b - a
	}
	return sortTotals(totals)
}

// BreakTagTotals accumulates per-tag break time inside the day from the
// realigned logs, sorted by descending duration.
func (st *Store) BreakTagTotals(day Day) []TagTotal {
	live := day.ClampEnd(st.NowMS())
	totals := make(map[string]int64)
	for _, b := range st.BreakLogs {
		if b.Tag == "" {
			continue
		}
		a := max64(b.Start, day.Start)
		z := min64(b.End, live)
		if z > a {
			totals[b.Tag] += z - a
		}
	}
	return sortTotals(totals)
}

// RenameWorkTag renames every session on the day carrying oldTag. A blank
// newTag clears the tag and restores default naming.
func (st *Store) RenameWorkTag(day Day, oldTag, newTag string) bool {
	now := st.NowMS()
	changed := false
	for i, sess := range st.Sessions {
		if sess.EffectiveEnd(now) <= day.Start || sess.Start >= day.End {
			continue
		}
		if strings.TrimSpace(sess.Tag) != oldTag {
			continue
		}
		st.Sessions[i].Tag = newTag
		changed = true
	}
	if changed && newTag == "" {
		st.AssignDefaultNames(day)
	}
	return changed
}

// RenameBreakTag renames every break log on the day carrying oldTag. A
// blank newTag removes the logs.
func (st *Store) RenameBreakTag(day Day, oldTag, newTag string) bool {
	changed := false
	kept := st.BreakLogs[:0:0]
	for _, b := range st.BreakLogs {
		inDay := b.TagTS >= day.Start && b.TagTS < day.End
		if b.TagTS == 0 {
			inDay = b.Start >= day.Start && b.Start < day.End
		}
		if !inDay || strings.TrimSpace(b.Tag) != oldTag {
			kept = append(kept, b)
			continue
		}
		changed = true
		if newTag == "" {
			continue
		}
		b.Tag = newTag
		kept = append(kept, b)
	}
	st.BreakLogs = kept
	return changed
}

func sortTotals(totals map[string]int64) []TagTotal {
	out := make([]TagTotal, 0, len(totals))
	for tag, ms := range totals {
		out = append(out, TagTotal{Tag: tag, MS: ms})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MS != out[j].MS {
			return out[i].MS > out[j].MS
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
