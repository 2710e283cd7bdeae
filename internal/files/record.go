package files

import (
	"encoding/json"
	"fmt"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// RecordVersion pins the on-disk schema.
const RecordVersion = 1

// Todo is a supplemental checklist item carried on the record and shown
// alongside the dial. Completed items are pruned on the next day.
type Todo struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	Created     int64  `json:"created"`
	CompletedAt int64  `json:"completedAt,omitempty"`
}

// Record is the full persisted application state: one flat JSON document.
type Record struct {
	Version     int                 `json:"version"`
	Sessions    []timeline.Session  `json:"sessions"`
	BreakLogs   []timeline.BreakLog `json:"breakLogs"`
	GoalMinutes int                 `json:"goalMinutes"`
	Theme       string              `json:"theme"`
	Streak      achieve.Streak      `json:"streak"`
	Badges      []achieve.Badge     `json:"badges"`
	Todos       []Todo              `json:"todos"`
}

// DefaultRecord is the fresh-install state.
func DefaultRecord() Record {
	return Record{
		Version:     RecordVersion,
		GoalMinutes: timeline.DefaultGoalMinutes,
		Theme:       "dark",
	}
}

// DecodeRecord reads a record defensively: every field is unmarshaled
// independently, and any field that fails (or the document as a whole)
// degrades to its default instead of poisoning the rest. It never
// returns an error; the worst corruption yields a fresh record.
func DecodeRecord(data []byte) Record {
	rec := DefaultRecord()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return rec
	}

	var version int
	if decodeField(raw, "version", &version) && version > 0 {
		rec.Version = version
	}

	var sessions []timeline.Session
	if decodeField(raw, "sessions", &sessions) {
		rec.Sessions = sanitizeSessions(sessions)
	}

	var logs []timeline.BreakLog
	if decodeField(raw, "breakLogs", &logs) {
		rec.BreakLogs = sanitizeBreakLogs(logs)
	}

	var goal int
	if decodeField(raw, "goalMinutes", &goal) && goal >= 0 && goal <= timeline.MaxGoalMinutes {
		rec.GoalMinutes = goal
	}

	var theme string
	if decodeField(raw, "theme", &theme) && theme != "" {
		rec.Theme = theme
	}

	var streak achieve.Streak
	if decodeField(raw, "streak", &streak) && streak.Current >= 0 && streak.Best >= 0 {
		rec.Streak = streak
	}

	var badges []achieve.Badge
	if decodeField(raw, "badges", &badges) {
		for _, b := range badges {
			if b.ID != "" && b.Date != "" {
				rec.Badges = append(rec.Badges, b)
			}
		}
	}

	var todos []Todo
	if decodeField(raw, "todos", &todos) {
		for i, td := range todos {
			if td.Text == "" {
				continue
			}
			if td.ID == "" {
				td.ID = fmt.Sprintf("todo-%d-%d", td.Created, i)
			}
			rec.Todos = append(rec.Todos, td)
		}
	}

	return rec
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) bool {
	msg, ok := raw[key]
	if !ok {
		return false
	}
	return json.Unmarshal(msg, dst) == nil
}

func sanitizeSessions(in []timeline.Session) []timeline.Session {
	var out []timeline.Session
	for _, s := range in {
		if s.Start <= 0 {
			continue
		}
		if s.State == timeline.SessionClosed && s.End <= s.Start {
			continue
		}
		out = append(out, s)
	}
	return out
}

// sanitizeBreakLogs drops unusable entries and backfills the tag anchor
// on records written before anchors existed, using the gap midpoint.
func sanitizeBreakLogs(in []timeline.BreakLog) []timeline.BreakLog {
	var out []timeline.BreakLog
	for _, b := range in {
		if b.Start <= 0 || b.End <= b.Start || b.Tag == "" {
			continue
		}
		if b.TagTS == 0 {
			b.TagTS = b.Start + (b.End-b.Start)/2
		}
		out = append(out, b)
	}
	return out
}
