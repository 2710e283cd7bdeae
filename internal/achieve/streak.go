package achieve

import (
	"time"

	"github.com/jakobkreft/caketimer/internal/timeline"
)

// Streak tracks consecutive days the app was opened. LastDay is empty
// until the first recorded day.
type Streak struct {
	Current int    `json:"current"`
	Best    int    `json:"best"`
	LastDay string `json:"lastDay,omitempty"`
}

// Advance rolls the streak for an app open at "today". Same day: no
// change. Exactly one calendar day since LastDay: increment. Any larger
// gap, or no prior record: reset to 1. Best is the running maximum.
// Reports whether the streak moved (the caller shows the daily welcome).
func Advance(s Streak, today time.Time) (Streak, bool) {
	key := timeline.DayOf(today).Key()
	if s.LastDay == key {
		return s, false
	}

	if s.LastDay == "" {
		s.Current = 1
	} else {
		last, err := time.ParseInLocation("2006-01-02", s.LastDay, today.Location())
		if err != nil {
			s.Current = 1
		} else {
			diff := daysBetween(last, today)
			if diff == 1 {
				s.Current++
			} else {
				s.Current = 1
			}
		}
	}
	if s.Current > s.Best {
		s.Best = s.Current
	}
	s.LastDay = key
	return s, true
}

// daysBetween counts whole local calendar days from a to b, robust to DST
// shifts by rounding the midnight-to-midnight span.
func daysBetween(a, b time.Time) int {
	am := timeline.DayOf(a).Start
	bm := timeline.DayOf(b).Start
	span := bm - am
	half := timeline.MsPerDay / 2
	return int((span + half) / timeline.MsPerDay)
}
