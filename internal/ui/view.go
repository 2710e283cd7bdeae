package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakobkreft/caketimer/internal/dial"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// Cell classes for the dial grid; each maps to one style and glyph.
const (
	cellOutside uint8 = iota
	cellFuture
	cellPast
	cellWorked
	cellHovered
	cellTick
	cellText
)

var cellGlyphs = [...]rune{
	cellOutside: ' ',
	cellFuture:  '·',
	cellPast:    '░',
	cellWorked:  '█',
	cellHovered: '█',
	cellTick:    '•',
	cellText:    ' ',
}

// View renders the frame: dial on the left, panel on the right, status
// and help at the bottom.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderDial(), m.renderPanel())

	var b strings.Builder
	b.WriteString(body)
	b.WriteByte('\n')
	b.WriteString(m.renderBottom())
	return b.String()
}

func (m Model) renderDial() string {
	cols, rows := dialExtent(m.width, m.height)
	day := m.app.Today()
	now := m.app.NowMS()

	sessions := m.gesture.Overlay(m.app.Store.Sessions)
	segs := timeline.SegmentsForDay(day, now, sessions)

	worked := minuteSet(timeline.MinuteRangesForDay(day, segs))
	var hovered [1440]bool
	if m.hover.Seg >= 0 && m.hover.Seg < len(segs) {
		seg := segs[m.hover.Seg]
		one := []timeline.Segment{seg}
		for _, r := range timeline.MinuteRangesForDay(day, one) {
			for i := r.Start; i < r.End && i < 1440; i++ {
				hovered[i] = true
			}
		}
	}
	nowMinute := clampMinute(int((now - day.Start) / timeline.MsPerMinute))

	classes := make([][]uint8, rows)
	runes := make([][]rune, rows)
	for row := 0; row < rows; row++ {
		classes[row] = make([]uint8, cols)
		runes[row] = make([]rune, cols)
		for col := 0; col < cols; col++ {
			x, y := float64(col), float64(row)*2
			dx, dy := x-m.geom.CX, y-m.geom.CY
			dist := dx*dx + dy*dy
			r2 := m.geom.R * m.geom.R

			class := cellOutside
			theta := m.geom.AngleAt(x, y)
			minute := clampMinute(int((dial.TimeAt(theta, day) - day.Start) / timeline.MsPerMinute))
			switch {
			case dist <= r2:
				switch {
				case hovered[minute]:
					class = cellHovered
				case worked[minute]:
					class = cellWorked
				case minute < nowMinute:
					class = cellPast
				default:
					class = cellFuture
				}
			case m.pointerOn && dist <= (m.geom.R+2.5)*(m.geom.R+2.5):
				if mm := minute % 60; mm <= 3 || mm >= 57 {
					class = cellTick
				}
			}
			classes[row][col] = class
			runes[row][col] = cellGlyphs[class]
		}
	}

	m.overlayCenter(classes, runes, segs)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= cols; col++ {
			if col < cols && classes[row][col] == classes[row][start] {
				continue
			}
			run := string(runes[row][start:col])
			if class := classes[row][start]; class == cellOutside {
				b.WriteString(run)
			} else {
				b.WriteString(m.styleFor(class).Render(run))
			}
			start = col
		}
	}
	return b.String()
}

// overlayCenter writes the live totals into the middle of the dial.
func (m Model) overlayCenter(classes [][]uint8, runes [][]rune, segs []timeline.Segment) {
	var workedMS int64
	for _, seg := range segs {
		workedMS += seg.EndMS - seg.StartMS
	}
	lines := []string{
		formatDurMS(workedMS),
		"goal " + formatMinutes(m.app.Store.GoalMinutes),
	}

	rows := len(classes)
	if rows == 0 {
		return
	}
	centerRow := (rows - 1) / 2
	for i, line := range lines {
		row := centerRow + i
		if row < 0 || row >= rows {
			continue
		}
		cols := len(runes[row])
		start := int(m.geom.CX) - len(line)/2
		for j, r := range line {
			col := start + j
			if col < 0 || col >= cols {
				continue
			}
			runes[row][col] = r
			classes[row][col] = cellText
		}
	}
}

func (m Model) styleFor(class uint8) lipgloss.Style {
	switch class {
	case cellWorked:
		return m.styles.Worked
	case cellHovered:
		return m.styles.Hovered
	case cellPast:
		return m.styles.Past
	case cellFuture:
		return m.styles.Future
	case cellTick:
		return m.styles.Tick
	case cellText:
		return m.styles.Center
	}
	return lipgloss.NewStyle()
}

func (m Model) renderPanel() string {
	day := m.app.Today()
	now := m.app.NowMS()
	s := m.styles

	var lines []string
	add := func(line string) { lines = append(lines, line) }

	add(s.Title.Render("caketimer") + "  " + s.Label.Render(time.UnixMilli(now).Format("Mon 02 Jan")))
	add("")

	if idx, ok := m.app.Store.Running(); ok {
		elapsed := now - m.app.Store.Sessions[idx].Start
		add(s.Running.Render("● recording") + "  " + s.Value.Render(formatDurMS(elapsed)))
	} else if lastStop := m.app.LastStopMS(); lastStop > 0 {
		add(s.Paused.Render("◌ break") + "  " + s.Value.Render(formatDurMS(now-lastStop)))
	} else {
		add(s.Paused.Render("◌ paused"))
	}

	workedMS := int64(m.app.WorkedSeconds() * 1000)
	goal := m.app.Store.GoalMinutes
	add(s.Label.Render("today  ") + s.Value.Render(formatDurMS(workedMS)+" / "+formatMinutes(goal)))
	add(progressBar(workedMS, int64(goal)*timeline.MsPerMinute, panelWidth-6, s))
	add("")

	add(s.Label.Render("streak ") + s.Value.Render(fmt.Sprintf("%d days (best %d)", m.app.Streak.Current, m.app.Streak.Best)))
	if badges := m.app.TodayBadges(); len(badges) > 0 {
		names := make([]string, len(badges))
		for i, b := range badges {
			names[i] = b.ID.Label()
		}
		add(s.Badge.Render("★ " + strings.Join(names, "  ★ ")))
	}
	add("")

	if totals := m.app.Store.WorkTagTotals(day); len(totals) > 0 {
		add(s.Label.Render("work"))
		for i, tt := range totals {
			if i == 4 {
				break
			}
			add("  " + s.Value.Render(tt.Tag) + "  " + s.Label.Render(formatDurMS(tt.MS)))
		}
	}
	if totals := m.app.Store.BreakTagTotals(day); len(totals) > 0 {
		add(s.Label.Render("breaks"))
		for i, tt := range totals {
			if i == 4 {
				break
			}
			add("  " + s.Value.Render(tt.Tag) + "  " + s.Label.Render(formatDurMS(tt.MS)))
		}
	}

	if len(m.app.Todos) > 0 {
		add("")
		add(s.Label.Render("todos"))
		for i, td := range m.app.Todos {
			if i == 9 {
				break
			}
			box := "[ ]"
			if td.Done {
				box = "[x]"
			}
			add(fmt.Sprintf("  %s %d %s", box, i+1, s.Value.Render(td.Text)))
		}
	}

	if tip := m.tooltip(day, now); tip != "" {
		add("")
		add(tip)
	}

	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

// tooltip describes whatever the pointer hovers: a worked slice with its
// bounds, or a break gap with any label.
func (m Model) tooltip(day timeline.Day, now int64) string {
	if !m.pointerOn {
		return ""
	}
	s := m.styles

	sessions := m.gesture.Overlay(m.app.Store.Sessions)
	segs := timeline.SegmentsForDay(day, now, sessions)
	if m.hover.Seg >= 0 && m.hover.Seg < len(segs) {
		seg := segs[m.hover.Seg]
		return s.Value.Render(seg.Tag) + "  " +
			s.Label.Render(formatClock(seg.StartMS)+"-"+formatClock(seg.EndMS)+"  "+formatDurMS(seg.EndMS-seg.StartMS))
	}

	instant := dial.TimeAt(m.lastTheta, day)
	gap, ok := timeline.GapAt(timeline.GapsForDay(day, now, segs), instant)
	if !ok {
		return ""
	}
	label := "break"
	if tag := m.app.BreakTagFor(gap); tag != "" {
		label = tag
	}
	return s.Value.Render(label) + "  " +
		s.Label.Render(formatClock(gap.StartMS)+"-"+formatClock(gap.EndMS)+"  "+formatDurMS(gap.EndMS-gap.StartMS))
}

func (m Model) renderBottom() string {
	s := m.styles
	var b strings.Builder

	switch m.mode {
	case modeConfirmClear:
		b.WriteString(s.Warn.Render("Clear all of today's sessions? (y/n)"))
	case modeTagWork, modeTagBreak, modeAddTodo:
		b.WriteString(s.Status.Render("> "))
		b.WriteString(m.input.View())
	default:
		if m.statusLine != "" {
			b.WriteString(s.Status.Render(m.statusLine))
		}
	}
	b.WriteByte('\n')

	b.WriteString(s.Help.Render("space start/stop  up/down goal  t tag  a todo  1-9 done  c clear  d theme  q quit"))
	b.WriteByte('\n')
	b.WriteString(s.Help.Render("mouse: click dial to toggle  drag a slice edge to adjust  shrink a slice to delete"))
	return b.String()
}

func minuteSet(ranges []timeline.MinuteRange) [1440]bool {
	var set [1440]bool
	for _, r := range ranges {
		for i := r.Start; i < r.End && i < 1440; i++ {
			if i >= 0 {
				set[i] = true
			}
		}
	}
	return set
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > 1439 {
		return 1439
	}
	return m
}

func progressBar(value, max int64, width int, s Styles) string {
	if width < 4 {
		width = 4
	}
	filled := 0
	if max > 0 {
		filled = int(int64(width) * value / max)
		if filled > width {
			filled = width
		}
	}
	return s.Worked.Render(strings.Repeat("█", filled)) + s.Future.Render(strings.Repeat("░", width-filled))
}

func formatClock(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

func formatDurMS(ms int64) string {
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
	return formatDurMS(int64(minutes) * timeline.MsPerMinute)
}

func welcomeLine(streak int) string {
	if streak <= 1 {
		return "Welcome back. A fresh day, a fresh cake."
	}
	return fmt.Sprintf("Welcome back. Day %d of your streak.", streak)
}

func toggleStatus(running bool) string {
	if running {
		return "Timer started."
	}
	return "Timer stopped."
}

func goalStatus(minutes int) string {
	return "Goal set to " + formatMinutes(minutes) + "."
}
