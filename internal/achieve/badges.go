// Package achieve derives per-day achievement state from the timeline.
// Badges are recomputed fully from current totals on every cycle and
// diffed against the recorded set, so eligibility is revocable: shrinking
// a session can take a badge away again. Streaks advance once per load.
package achieve

import (
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// BadgeID enumerates the per-day achievements.
type BadgeID string

const (
	BadgeEarlyBird    BadgeID = "early-bird"
	BadgeSolidHour    BadgeID = "solid-hour"
	BadgeDeepWork     BadgeID = "deep-work"
	BadgeGoalComplete BadgeID = "goal-complete"
)

// Label renders a badge for display.
func (id BadgeID) Label() string {
	switch id {
	case BadgeSolidHour:
		return "Solid Hour"
	case BadgeEarlyBird:
		return "Early Bird"
	case BadgeDeepWork:
		return "Deep Work"
	case BadgeGoalComplete:
		return "Goal Complete"
	}
	return string(id)
}

// DisplayOrder fixes how a day's badges are listed.
var DisplayOrder = []BadgeID{BadgeEarlyBird, BadgeSolidHour, BadgeDeepWork, BadgeGoalComplete}

// Badge records one earned achievement on one calendar day.
type Badge struct {
	ID   BadgeID `json:"id"`
	Date string  `json:"date"`
}

// Rules holds the eligibility thresholds. Zero value is unusable; use
// DefaultRules and override from config.
type Rules struct {
	EarlyBirdMS int64
	SolidHourMS int64
	DeepWorkMS  int64
	HistoryCap  int
}

// DefaultRules mirrors the thresholds the widget shipped with: early bird
// before 07:30, a solid hour at 60 minutes, deep work at 180, and at most
// 60 badge records kept across all days.
func DefaultRules() Rules {
	return Rules{
		EarlyBirdMS: 7*timeline.MsPerHour + 30*timeline.MsPerMinute,
		SolidHourMS: 60 * timeline.MsPerMinute,
		DeepWorkMS:  180 * timeline.MsPerMinute,
		HistoryCap:  60,
	}
}

// Eligible scans the day's timeline and reports which badges the current
// totals earn. workedSeconds must come from timeline.WorkedSeconds so the
// goal check uses second resolution rather than minute-quantized ranges.
func Eligible(day timeline.Day, now int64, sessions []timeline.Session, goalMinutes int, workedSeconds float64, rules Rules) map[BadgeID]bool {
	eligible := make(map[BadgeID]bool)

	segs := timeline.SegmentsForDay(day, now, sessions)
	for _, seg := range segs {
		dur := seg.EndMS - seg.StartMS
		if dur >= rules.SolidHourMS {
			eligible[BadgeSolidHour] = true
		}
		if dur >= rules.DeepWorkMS {
			eligible[BadgeDeepWork] = true
		}
		if eligible[BadgeSolidHour] && eligible[BadgeDeepWork] {
			break
		}
	}

	var first *timeline.Session
	for i, s := range sessions {
		if s.Start < day.Start || s.Start >= day.End {
			continue
		}
		if first == nil || s.Start < first.Start {
			first = &sessions[i]
		}
	}
	if first != nil && first.Start-day.Start < rules.EarlyBirdMS {
		eligible[BadgeEarlyBird] = true
	}

	goalSecs := float64(goalMinutes) * 60
	if goalSecs > 0 && workedSeconds >= goalSecs {
		eligible[BadgeGoalComplete] = true
	}

	return eligible
}

// SyncDay reconciles the recorded badges for one day against the eligible
// set: revoked entries are dropped, newly eligible ones appended, and
// duplicates per (id, day) prevented. The history cap trims oldest-first
// across all days. Reports whether the slice changed.
func SyncDay(badges []Badge, dayKey string, eligible map[BadgeID]bool, rules Rules) ([]Badge, bool) {
	changed := false

	current := make(map[BadgeID]bool)
	kept := badges[:0:0]
	for _, b := range badges {
		if b.Date != dayKey {
			kept = append(kept, b)
			continue
		}
		if !eligible[b.ID] || current[b.ID] {
			changed = true
			continue
		}
		current[b.ID] = true
		kept = append(kept, b)
	}

	for _, id := range DisplayOrder {
		if eligible[id] && !current[id] {
			kept = append(kept, Badge{ID: id, Date: dayKey})
			changed = true
		}
	}

	if rules.HistoryCap > 0 && len(kept) > rules.HistoryCap {
		kept = kept[len(kept)-rules.HistoryCap:]
		changed = true
	}
	return kept, changed
}

// DropDay removes every badge recorded for the day; clearing a day's
// intervals invalidates the totals they were derived from.
func DropDay(badges []Badge, dayKey string) ([]Badge, bool) {
	kept := badges[:0:0]
	for _, b := range badges {
		if b.Date != dayKey {
			kept = append(kept, b)
		}
	}
	return kept, len(kept) != len(badges)
}

// ForDay returns the day's badges deduplicated and in display order.
func ForDay(badges []Badge, dayKey string) []Badge {
	seen := make(map[BadgeID]bool)
	byID := make(map[BadgeID]Badge)
	for _, b := range badges {
		if b.Date == dayKey && !seen[b.ID] {
			seen[b.ID] = true
			byID[b.ID] = b
		}
	}
	var out []Badge
	for _, id := range DisplayOrder {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}
