// Package app wires the timeline store, achievements, and persistence
// into one application root. There are no package-level singletons: the
// process owns exactly one App and hands it to the presentation layer.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/dial"
	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// App owns all mutable state and the persistence collaborator. Methods
// that mutate re-derive dependent state and save; save failures are
// swallowed so a read-only disk never blocks the timer.
type App struct {
	Store  *timeline.Store
	Badges []achieve.Badge
	Streak achieve.Streak
	Theme  string
	Todos  []files.Todo

	// Welcome is set when this load was the first open of the day.
	Welcome bool

	Config files.Config

	rules    achieve.Rules
	manager  *files.Manager
	now      func() time.Time
	shutOnce sync.Once
}

// New loads state and config from the manager's directory. A missing or
// damaged record degrades to defaults rather than failing.
func New(manager *files.Manager) *App {
	return NewAt(manager, time.Now)
}

// NewAt is New with an injectable clock.
func NewAt(manager *files.Manager, now func() time.Time) *App {
	cfg := files.DefaultConfig()
	rec := files.DefaultRecord()
	fresh := true
	if manager != nil {
		cfg = files.LoadConfig(manager.ConfigPath())
		fresh = !manager.HasState()
		rec, _ = manager.Load()
	}

	store := timeline.NewStoreAt(now)
	store.Sessions = rec.Sessions
	store.BreakLogs = rec.BreakLogs
	store.GoalMinutes = rec.GoalMinutes
	if fresh {
		// No record yet: the config's goal seeds the first one. Once a
		// record exists it owns the goal.
		store.GoalMinutes = cfg.GoalMinutes
	}
	store.MinSessionMS = cfg.MinSessionMS()

	a := &App{
		Store:   store,
		Badges:  rec.Badges,
		Theme:   rec.Theme,
		Todos:   rec.Todos,
		Config:  cfg,
		rules:   cfg.Rules(),
		manager: manager,
		now:     now,
	}
	a.Streak, a.Welcome = achieve.Advance(rec.Streak, now())
	a.Refresh()
	a.Save()
	return a
}

func (a *App) NowMS() int64        { return a.Store.NowMS() }
func (a *App) Today() timeline.Day { return a.Store.Today() }

// Running reports whether a session is open.
func (a *App) Running() bool {
	_, ok := a.Store.Running()
	return ok
}

// ToggleTimer starts the timer, or stops it if running. Stopping a
// session shorter than the configured minimum discards it as a misfire.
func (a *App) ToggleTimer() {
	if a.Running() {
		a.Store.Stop()
	} else {
		a.Store.Start()
	}
	a.Refresh()
	a.Save()
}

// SetGoal sets the daily goal in minutes, clamped to a day.
func (a *App) SetGoal(minutes int) {
	a.Store.SetGoal(minutes)
	a.Refresh()
	a.Save()
}

// AdjustGoal nudges the goal by delta minutes.
func (a *App) AdjustGoal(delta int) {
	a.SetGoal(a.Store.GoalMinutes + delta)
}

// ClearToday wipes today's slice of the timeline, its break logs, and
// the badges derived from it. Sessions spanning midnight keep their
// out-of-day remnants.
func (a *App) ClearToday() {
	day := a.Today()
	a.Store.ClearDay(day)
	a.Badges, _ = achieve.DropDay(a.Badges, day.Key())
	a.Refresh()
	a.Save()
}

// TagSession names a session; a blank tag reverts it to a default name.
func (a *App) TagSession(sessionIndex int, tag string) {
	a.Store.TagSession(a.Today(), sessionIndex, tag)
	a.Refresh()
	a.Save()
}

// TagBreak labels the break gap containing the instant t; a blank tag
// removes the label.
func (a *App) TagBreak(t int64, tag string) {
	a.Store.TagBreak(a.Today(), t, tag)
	a.Refresh()
	a.Save()
}

// Apply executes a completed dial gesture against the timeline.
func (a *App) Apply(act dial.Action) {
	switch act.Kind {
	case dial.ActionToggle:
		a.ToggleTimer()
		return
	case dial.ActionCommit:
		a.Store.SetSessionBounds(act.SessionIndex, act.Start, act.End)
	case dial.ActionDeleteSlice:
		a.Store.DeleteDaySlice(act.SessionIndex, a.Today())
	default:
		return
	}
	a.Refresh()
	a.Save()
}

// Refresh re-derives everything that hangs off the timeline: default
// session names, break-log alignment, today's badge set, and the todo
// list's day rollover. It is idempotent; callers run it after every
// mutation and on every clock tick.
func (a *App) Refresh() {
	day := a.Today()
	now := a.NowMS()

	a.Store.AssignDefaultNames(day)
	a.Store.RealignBreakLogs(day)

	worked := timeline.WorkedSeconds(day, now, a.Store.Sessions)
	eligible := achieve.Eligible(day, now, a.Store.Sessions, a.Store.GoalMinutes, worked, a.rules)
	a.Badges, _ = achieve.SyncDay(a.Badges, day.Key(), eligible, a.rules)

	a.pruneTodos(day)
}

// Save persists the full record. Failures are deliberately dropped: the
// in-memory state stays authoritative and the next save retries.
func (a *App) Save() {
	if a.manager == nil {
		return
	}
	_ = a.manager.Save(files.Record{
		Version:     files.RecordVersion,
		Sessions:    a.Store.Sessions,
		BreakLogs:   a.Store.BreakLogs,
		GoalMinutes: a.Store.GoalMinutes,
		Theme:       a.Theme,
		Streak:      a.Streak,
		Badges:      a.Badges,
		Todos:       a.Todos,
	})
}

// Shutdown runs at most once: it stops any open session (discarding it
// if under the minimum) and writes a final record.
func (a *App) Shutdown() {
	a.shutOnce.Do(func() {
		if a.Running() {
			a.Store.Stop()
		}
		a.Refresh()
		a.Save()
	})
}

// ToggleTheme flips between the dark and light palettes.
func (a *App) ToggleTheme() {
	if a.Theme == "light" {
		a.Theme = "dark"
	} else {
		a.Theme = "light"
	}
	a.Save()
}

// AddTodo appends a checklist item. Blank text is ignored.
func (a *App) AddTodo(text string) {
	if text == "" {
		return
	}
	now := a.NowMS()
	a.Todos = append(a.Todos, files.Todo{
		ID:      fmt.Sprintf("todo-%d-%d", now, len(a.Todos)),
		Text:    text,
		Created: now,
	})
	a.Save()
}

// ToggleTodo flips an item's done state, stamping the completion time.
func (a *App) ToggleTodo(id string) {
	for i := range a.Todos {
		if a.Todos[i].ID != id {
			continue
		}
		a.Todos[i].Done = !a.Todos[i].Done
		if a.Todos[i].Done {
			a.Todos[i].CompletedAt = a.NowMS()
		} else {
			a.Todos[i].CompletedAt = 0
		}
		a.Save()
		return
	}
}

// RemoveTodo deletes an item by id.
func (a *App) RemoveTodo(id string) {
	for i := range a.Todos {
		if a.Todos[i].ID == id {
			a.Todos = append(a.Todos[:i], a.Todos[i+1:]...)
			a.Save()
			return
		}
	}
}

// pruneTodos drops items completed before today; finished work doesn't
// carry into the next day's list.
func (a *App) pruneTodos(day timeline.Day) {
	kept := a.Todos[:0:0]
	for _, td := range a.Todos {
		if td.Done && td.CompletedAt > 0 && td.CompletedAt < day.Start {
			continue
		}
		kept = append(kept, td)
	}
	a.Todos = kept
}

// Segments returns today's worked segments, tagged, for rendering.
func (a *App) Segments() []timeline.Segment {
	return timeline.SegmentsForDay(a.Today(), a.NowMS(), a.Store.Sessions)
}

// Gaps returns today's break gaps between segments.
func (a *App) Gaps() []timeline.Gap {
	day := a.Today()
	now := a.NowMS()
	return timeline.GapsForDay(day, now, timeline.SegmentsForDay(day, now, a.Store.Sessions))
}

// MinuteRanges returns today's worked minutes quantized for the dial.
func (a *App) MinuteRanges() []timeline.MinuteRange {
	day := a.Today()
	return timeline.MinuteRangesForDay(day, timeline.SegmentsForDay(day, a.NowMS(), a.Store.Sessions))
}

// WorkedSeconds is today's second-resolution total.
func (a *App) WorkedSeconds() float64 {
	return timeline.WorkedSeconds(a.Today(), a.NowMS(), a.Store.Sessions)
}

// LastStopMS returns when the most recent closed session ended today, or
// 0 when nothing has been worked yet. The paused panel shows the break
// running since that instant.
func (a *App) LastStopMS() int64 {
	day := a.Today()
	now := a.NowMS()
	var last int64
	for _, s := range a.Store.Sessions {
		if s.State != timeline.SessionClosed {
			continue
		}
		if s.End <= day.Start || s.End > now {
			continue
		}
		if s.End > last {
			last = s.End
		}
	}
	return last
}

// TodayBadges lists today's earned badges in display order.
func (a *App) TodayBadges() []achieve.Badge {
	return achieve.ForDay(a.Badges, a.Today().Key())
}

// BreakTagFor looks up the label recorded for a gap, if any.
func (a *App) BreakTagFor(gap timeline.Gap) string {
	mid := gap.StartMS + (gap.EndMS-gap.StartMS)/2
	if i := a.Store.FindBreakLog(gap.StartMS, gap.EndMS, mid); i >= 0 {
		return a.Store.BreakLogs[i].Tag
	}
	return ""
}
