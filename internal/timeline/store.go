package timeline

import "time"

// Default thresholds, overridable through the config file.
const (
	// DefaultMinSessionMS is the minimum viable session length: a
	// session stopped earlier than this is treated as a misfire and
	// discarded rather than recorded.
	DefaultMinSessionMS int64 = 15_000
	// DefaultGoalMinutes matches a fresh record.
	DefaultGoalMinutes = 240
	// MaxGoalMinutes caps the daily goal at a full day.
	MaxGoalMinutes = 24 * 60
)

// Store owns the mutable session and break-log lists. All mutation goes
// through its methods so the "at most one open session" invariant holds;
// derived structures are recomputed on demand by the algebra functions.
type Store struct {
	Sessions     []Session
	BreakLogs    []BreakLog
	GoalMinutes  int
	MinSessionMS int64

	now func() time.Time
}

// NewStore builds an empty store on the system clock.
func NewStore() *Store {
	return NewStoreAt(time.Now)
}

// NewStoreAt builds a store with an injectable clock for deterministic tests.
func NewStoreAt(now func() time.Time) *Store {
	return &Store{
		GoalMinutes:  DefaultGoalMinutes,
		MinSessionMS: DefaultMinSessionMS,
		now:          now,
	}
}

// NowMS returns the current instant in epoch milliseconds.
func (st *Store) NowMS() int64 {
	return st.now().UnixMilli()
}

// Today returns the day window containing the current instant.
func (st *Store) Today() Day {
	return DayOf(st.now())
}

// Running reports the index of the open session, if any.
func (st *Store) Running() (int, bool) {
	for i, s := range st.Sessions {
		if s.State == SessionOpen {
			return i, true
		}
	}
	return -1, false
}

// Start opens a session at now. No-op when one is already running.
// Reports whether a session was started.
func (st *Store) Start() bool {
	if _, running := st.Running(); running {
		return false
	}
	st.Sessions = append(st.Sessions, Session{Start: st.NowMS(), State: SessionOpen})
	return true
}

// Stop closes the open session at now. A session shorter than the
// minimum viable duration is discarded entirely. No-op when idle.
// Reports whether there was an open session.
func (st *Store) Stop() bool {
	i, running := st.Running()
	if !running {
		return false
	}
	now := st.NowMS()
	if now-st.Sessions[i].Start < st.MinSessionMS {
		st.Sessions = append(st.Sessions[:i], st.Sessions[i+1:]...)
		return true
	}
	st.Sessions[i].End = now
	st.Sessions[i].State = SessionClosed
	return true
}

// ClearDay removes all session material and break logs inside the day
// window. A session straddling a window boundary is split into up to two
// remnants outside it. A running session is stopped first.
func (st *Store) ClearDay(day Day) {
	if _, running := st.Running(); running {
		st.Stop()
	}
	now := st.NowMS()
	next := st.Sessions[:0:0]
	for _, sess := range st.Sessions {
		s, e := sess.Start, sess.EffectiveEnd(now)
		if e <= day.Start || s >= day.End {
			next = append(next, sess)
			continue
		}
		if s < day.Start {
			next = append(next, Session{Start: s, End: day.Start, State: SessionClosed, Tag: sess.Tag})
		}
		if e > day.End {
			next = append(next, Session{Start: day.End, End: e, State: SessionClosed, Tag: sess.Tag})
		}
	}
	st.Sessions = next

	logs := st.BreakLogs[:0:0]
	for _, b := range st.BreakLogs {
		if b.End <= day.Start || b.Start >= day.End {
			logs = append(logs, b)
		}
	}
	st.BreakLogs = logs
}

// DeleteDaySlice removes the given session's material inside the day
// window, leaving any parts on other days intact: contained sessions are
// removed outright, boundary-crossing ones are truncated, and a session
// spanning the whole window is split into two bracketing remnants.
func (st *Store) DeleteDaySlice(sessionIndex int, day Day) {
	if sessionIndex < 0 || sessionIndex >= len(st.Sessions) {
		return
	}
	now := st.NowMS()
	sess := st.Sessions[sessionIndex]
	s, e := sess.Start, sess.EffectiveEnd(now)
	switch {
	case e <= day.Start || s >= day.End:
		// no material inside the window
	case s >= day.Start && e <= day.End:
		st.Sessions = append(st.Sessions[:sessionIndex], st.Sessions[sessionIndex+1:]...)
	case s < day.Start && e <= day.End:
		st.Sessions[sessionIndex].End = day.Start
		st.Sessions[sessionIndex].State = SessionClosed
	case s >= day.Start && e > day.End:
		st.Sessions[sessionIndex].Start = day.End
		if st.Sessions[sessionIndex].State == SessionOpen {
			st.Sessions[sessionIndex].End = 0
		}
	default: // spans both sides of the window
		st.Sessions[sessionIndex].End = day.Start
		st.Sessions[sessionIndex].State = SessionClosed
		st.Sessions = append(st.Sessions, Session{Start: day.End, End: e, State: SessionClosed, Tag: sess.Tag})
	}
}

// SetSessionBounds commits new start/end instants for a session, closing
// it. Used by the drag-commit path.
func (st *Store) SetSessionBounds(sessionIndex int, start, end int64) {
	if sessionIndex < 0 || sessionIndex >= len(st.Sessions) {
		return
	}
	st.Sessions[sessionIndex].Start = start
	st.Sessions[sessionIndex].End = end
	st.Sessions[sessionIndex].State = SessionClosed
}

// SetGoal clamps the daily goal to [0, 1440] minutes.
func (st *Store) SetGoal(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > MaxGoalMinutes {
		minutes = MaxGoalMinutes
	}
	st.GoalMinutes = minutes
}
