package timeline

import (
	"encoding/json"
	"time"
)

// Millisecond spans used for day math. All instants in this package are
// integer milliseconds since the Unix epoch.
const (
	MsPerSecond int64 = 1000
	MsPerMinute int64 = 60 * MsPerSecond
	MsPerHour   int64 = 60 * MsPerMinute
	MsPerDay    int64 = 24 * MsPerHour
)

// SessionState expresses whether a work session is still running.
type SessionState uint8

const (
	// SessionClosed marks sessions with a fixed end instant.
	SessionClosed SessionState = iota
	// SessionOpen marks the (at most one) currently running session.
	SessionOpen
)

// Session is a single work interval. Open sessions have no meaningful End
// until they are closed; EffectiveEnd substitutes "now" for them. Sessions
// may span midnight and contribute to two calendar days.
type Session struct {
	Start int64
	End   int64
	State SessionState
	Tag   string
}

// EffectiveEnd returns the session end, or now for a still-open session.
func (s Session) EffectiveEnd(now int64) int64 {
	if s.State == SessionOpen {
		return now
	}
	return s.End
}

type sessionJSON struct {
	Start int64  `json:"start"`
	End   *int64 `json:"end"`
	Tag   string `json:"tag,omitempty"`
}

// MarshalJSON keeps the persisted shape of the record: a running session
// is written with a null end.
func (s Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{Start: s.Start, Tag: s.Tag}
	if s.State == SessionClosed {
		end := s.End
		out.End = &end
	}
	return json.Marshal(out)
}

// UnmarshalJSON maps a null end back onto SessionOpen.
func (s *Session) UnmarshalJSON(data []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Start = in.Start
	s.Tag = in.Tag
	if in.End == nil {
		s.State = SessionOpen
		s.End = 0
	} else {
		s.State = SessionClosed
		s.End = *in.End
	}
	return nil
}

// BreakLog names a gap between sessions. TagTS is the anchor instant used
// to re-locate which gap the tag belongs to after sessions move; after
// every realignment [Start,End) equals some currently computed gap that
// contains TagTS, or the log is gone.
type BreakLog struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Tag   string `json:"tag"`
	TagTS int64  `json:"tagTs"`
}

// Day is a calendar-day window [Start, End) anchored to local midnight.
type Day struct {
	Start int64
	End   int64
}

// DayOf returns the day window containing t, in t's location.
func DayOf(t time.Time) Day {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	startMS := start.UnixMilli()
	return Day{Start: startMS, End: startMS + MsPerDay}
}

// Key renders the day as YYYY-MM-DD in the viewer's local calendar.
func (d Day) Key() string {
	return time.UnixMilli(d.Start).Local().Format("2006-01-02")
}

// Contains reports whether the instant falls inside the window.
func (d Day) Contains(ms int64) bool {
	return ms >= d.Start && ms < d.End
}

// ClampEnd returns the live edge of the day: the lesser of now and day end.
// Gaps are never computed past it.
func (d Day) ClampEnd(now int64) int64 {
	if now < d.End {
		return now
	}
	return d.End
}
