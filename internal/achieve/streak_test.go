package achieve

import (
	"testing"
	"time"
)

func TestAdvanceFirstOpenEver(t *testing.T) {
	got, moved := Advance(Streak{}, testBase)
	if !moved {
		t.Fatalf("Advance reported no movement on first open")
	}
	if got.Current != 1 || got.Best != 1 || got.LastDay != "2026-03-14" {
		t.Fatalf("streak = %+v, want current=1 best=1 lastDay=2026-03-14", got)
	}
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	s := Streak{Current: 4, Best: 6, LastDay: "2026-03-14"}
	got, moved := Advance(s, testBase.Add(15*time.Hour))
	if moved {
		t.Fatalf("Advance moved on the same day")
	}
	if got != s {
		t.Fatalf("streak = %+v, want unchanged %+v", got, s)
	}
}

func TestAdvanceConsecutiveDayIncrements(t *testing.T) {
	s := Streak{Current: 4, Best: 6, LastDay: "2026-03-13"}
	got, moved := Advance(s, testBase)
	if !moved || got.Current != 5 {
		t.Fatalf("streak = %+v (moved=%v), want current=5", got, moved)
	}
	if got.Best != 6 {
		t.Fatalf("best = %d, want 6 untouched", got.Best)
	}
}

func TestAdvanceGapResets(t *testing.T) {
	s := Streak{Current: 9, Best: 9, LastDay: "2026-03-11"}
	got, _ := Advance(s, testBase)
	if got.Current != 1 {
		t.Fatalf("current = %d, want reset to 1 after a 3-day gap", got.Current)
	}
	if got.Best != 9 {
		t.Fatalf("best = %d, want 9 preserved", got.Best)
	}
}

func TestAdvanceBestTracksRunningMaximum(t *testing.T) {
	s := Streak{Current: 6, Best: 6, LastDay: "2026-03-13"}
	got, _ := Advance(s, testBase)
	if got.Current != 7 || got.Best != 7 {
		t.Fatalf("streak = %+v, want current=7 best=7", got)
	}
}

func TestAdvanceMalformedLastDayResets(t *testing.T) {
	s := Streak{Current: 3, Best: 5, LastDay: "not-a-date"}
	got, moved := Advance(s, testBase)
	if !moved || got.Current != 1 || got.Best != 5 {
		t.Fatalf("streak = %+v (moved=%v), want reset current with best kept", got, moved)
	}
}
