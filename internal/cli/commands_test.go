package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

var testDate = time.Date(2020, time.March, 14, 0, 0, 0, 0, time.Local)

func testManager(t *testing.T) *files.Manager {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func seedRecord(t *testing.T, mgr *files.Manager, rec files.Record) {
	t.Helper()
	if err := mgr.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %s: %v", cmd.Use, err)
	}
	return buf.String()
}

func at(hour, min int) int64 {
	return testDate.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute).UnixMilli()
}

func TestTodayCommandReportsDay(t *testing.T) {
	mgr := testManager(t)
	rec := files.DefaultRecord()
	rec.Sessions = []timeline.Session{
		{Start: at(9, 0), End: at(10, 30), State: timeline.SessionClosed, Tag: "Writing"},
		{Start: at(11, 0), End: at(12, 0), State: timeline.SessionClosed},
	}
	rec.BreakLogs = []timeline.BreakLog{
		{Start: at(10, 30), End: at(11, 0), Tag: "Lunch", TagTS: at(10, 45)},
	}
	rec.Badges = []achieve.Badge{{ID: achieve.BadgeSolidHour, Date: "2020-03-14"}}
	seedRecord(t, mgr, rec)

	out := runCommand(t, newTodayCommand(mgr), "--date", "2020-03-14")

	for _, want := range []string{
		"2020-03-14",
		"worked 2h 30m",
		"09:00-10:30  Writing  1h 30m",
		"10:30-11:00  Lunch  30m",
		"Session 1  1h 00m",
		"badges: Solid Hour",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTodayCommandEmptyDay(t *testing.T) {
	mgr := testManager(t)
	seedRecord(t, mgr, files.DefaultRecord())

	out := runCommand(t, newTodayCommand(mgr), "--date", "2020-03-14")
	if !strings.Contains(out, "(no sessions)") {
		t.Fatalf("output = %q", out)
	}
}

func TestGoalCommandShowsAndSets(t *testing.T) {
	mgr := testManager(t)
	seedRecord(t, mgr, files.DefaultRecord())

	out := runCommand(t, newGoalCommand(mgr))
	if !strings.Contains(out, "4h 00m") {
		t.Fatalf("default goal output = %q", out)
	}

	out = runCommand(t, newGoalCommand(mgr), "300")
	if !strings.Contains(out, "5h 00m") {
		t.Fatalf("set goal output = %q", out)
	}

	rec, err := mgr.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.GoalMinutes != 300 {
		t.Fatalf("persisted goal = %d", rec.GoalMinutes)
	}
}

func TestGoalCommandClampsOutOfRange(t *testing.T) {
	mgr := testManager(t)
	seedRecord(t, mgr, files.DefaultRecord())

	runCommand(t, newGoalCommand(mgr), "99999")

	rec, _ := mgr.Load()
	if rec.GoalMinutes != timeline.MaxGoalMinutes {
		t.Fatalf("persisted goal = %d, want clamped", rec.GoalMinutes)
	}
}

func TestClearCommandRequiresYes(t *testing.T) {
	mgr := testManager(t)
	seedRecord(t, mgr, files.DefaultRecord())

	cmd := newClearCommand(mgr)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("clear without --yes succeeded")
	}
}

func TestClearCommandWipesToday(t *testing.T) {
	mgr := testManager(t)
	today := timeline.DayOf(time.Now().In(time.Local))
	rec := files.DefaultRecord()
	rec.Sessions = []timeline.Session{
		{Start: today.Start + timeline.MsPerHour, End: today.Start + 2*timeline.MsPerHour, State: timeline.SessionClosed},
	}
	rec.Badges = []achieve.Badge{
		{ID: achieve.BadgeSolidHour, Date: today.Key()},
		{ID: achieve.BadgeSolidHour, Date: "2020-01-01"},
	}
	seedRecord(t, mgr, rec)

	out := runCommand(t, newClearCommand(mgr), "--yes")
	if !strings.Contains(out, "cleared "+today.Key()) {
		t.Fatalf("output = %q", out)
	}

	got, _ := mgr.Load()
	if len(got.Sessions) != 0 {
		t.Fatalf("sessions survived: %+v", got.Sessions)
	}
	if len(got.Badges) != 1 || got.Badges[0].Date != "2020-01-01" {
		t.Fatalf("badges = %+v, want only the old day kept", got.Badges)
	}
}

func TestStreakCommand(t *testing.T) {
	mgr := testManager(t)
	rec := files.DefaultRecord()
	rec.Streak = achieve.Streak{Current: 3, Best: 9, LastDay: "2020-03-14"}
	seedRecord(t, mgr, rec)

	out := runCommand(t, newStreakCommand(mgr))
	for _, want := range []string{"current: 3 days", "best:    9 days", "last:    2020-03-14"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReviewCommandCoversFourWeeks(t *testing.T) {
	mgr := testManager(t)
	yesterday := timeline.DayOf(time.Now().In(time.Local).AddDate(0, 0, -1))
	rec := files.DefaultRecord()
	rec.Sessions = []timeline.Session{
		{Start: yesterday.Start + 9*timeline.MsPerHour, End: yesterday.Start + 13*timeline.MsPerHour, State: timeline.SessionClosed},
	}
	seedRecord(t, mgr, rec)

	out := runCommand(t, newReviewCommand(mgr))
	if got := strings.Count(out, "Week of"); got < 4 || got > 5 {
		t.Fatalf("week headers = %d:\n%s", got, out)
	}
	if !strings.Contains(out, "4h 00m") {
		t.Fatalf("yesterday's total missing:\n%s", out)
	}
	if !strings.Contains(out, "* goal reached") {
		t.Fatalf("goal marker legend missing:\n%s", out)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	mgr := testManager(t)
	root := NewRootCommand(context.Background(), mgr)

	for _, name := range []string{"today", "review", "goal", "clear", "streak", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("root command missing %q", name)
		}
	}
}
