package cli

import (
	"fmt"
	"time"

	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		now := time.Now().In(time.Local)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// loadStore reads the record without side effects: no streak advance, no
// save-back. Report commands use it.
func loadStore(manager *files.Manager) (*timeline.Store, files.Record, error) {
	rec, err := manager.Load()
	if err != nil {
		return nil, rec, err
	}
	store := timeline.NewStore()
	store.Sessions = rec.Sessions
	store.BreakLogs = rec.BreakLogs
	store.GoalMinutes = rec.GoalMinutes
	return store, rec, nil
}

func formatClock(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

func formatDur(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / timeline.MsPerHour
	m := (ms % timeline.MsPerHour) / timeline.MsPerMinute
	s := (ms % timeline.MsPerMinute) / timeline.MsPerSecond
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func formatMinutes(minutes int) string {
	return formatDur(int64(minutes) * timeline.MsPerMinute)
}
