package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jakobkreft/caketimer/internal/app"
	"github.com/jakobkreft/caketimer/internal/dial"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// tickInterval drives the live redraw of the running timer and the
// idempotent re-derivation pass.
const tickInterval = 500 * time.Millisecond

// Model owns Bubble Tea state for the dial TUI.
type Model struct {
	app *app.App

	width  int
	height int
	geom   dial.Geometry

	gesture   *dial.Gesture
	hover     dial.Hover
	pointerOn bool
	lastTheta float64

	mode      mode
	input     textinput.Model
	tagTarget tagTarget

	styles     Styles
	statusLine string
}

type mode uint8

const (
	modeNormal mode = iota
	modeTagWork
	modeTagBreak
	modeAddTodo
	modeConfirmClear
)

// tagTarget pins what a tag prompt applies to, captured at prompt open so
// a ticking clock cannot shift it under the user.
type tagTarget struct {
	sessionIndex int
	instant      int64
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// NewModel seeds the model with the application root.
func NewModel(a *app.App) Model {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 32

	m := Model{
		app:     a,
		gesture: dial.NewGesture(),
		hover:   dial.NoHover,
		input:   input,
		styles:  NewStyles(a.Theme),
	}
	m.gesture.DragMinMS = a.Config.DragMinMS()
	m.gesture.DeleteThresholdMS = a.Config.DeleteThresholdMS()
	if a.Welcome {
		m.statusLine = welcomeLine(a.Streak.Current)
	}
	return m
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update wires TUI state transitions from input events and the ticker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.app.Refresh()
		return m, tickCmd()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.geom = dialGeometry(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.BlurMsg:
		// Losing terminal focus is the save trigger; state must survive
		// a later kill.
		m.app.Save()
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ":
		m.app.ToggleTimer()
		m.statusLine = toggleStatus(m.app.Running())
	case "up":
		m.app.AdjustGoal(30)
		m.statusLine = goalStatus(m.app.Store.GoalMinutes)
	case "down":
		m.app.AdjustGoal(-30)
		m.statusLine = goalStatus(m.app.Store.GoalMinutes)
	case "t":
		return m.beginTag()
	case "a":
		return m.beginAddTodo()
	case "c":
		m.mode = modeConfirmClear
		m.statusLine = ""
	case "d":
		m.app.ToggleTheme()
		m.styles = NewStyles(m.app.Theme)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.app.Todos) {
			m.app.ToggleTodo(m.app.Todos[idx].ID)
		}
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmClear {
		switch msg.String() {
		case "y", "Y":
			m.app.ClearToday()
			m.mode = modeNormal
			m.statusLine = "Cleared today."
		case "n", "N", "esc":
			m.mode = modeNormal
			m.statusLine = "Clear cancelled."
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.statusLine = "Cancelled."
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeTagWork:
		m.app.TagSession(m.tagTarget.sessionIndex, value)
		if value == "" {
			m.statusLine = "Restored the default session name."
		} else {
			m.statusLine = "Tagged session: " + value
		}
	case modeTagBreak:
		m.app.TagBreak(m.tagTarget.instant, value)
		if value == "" {
			m.statusLine = "Removed the break label."
		} else {
			m.statusLine = "Labelled break: " + value
		}
	case modeAddTodo:
		if value != "" {
			m.app.AddTodo(value)
			m.statusLine = "Added todo."
		}
	}
	m.mode = modeNormal
	m.input.Blur()
	return m, nil
}

// beginTag opens a tag prompt for whatever the pointer is over: a worked
// segment gets a session tag, a break gap gets a break label.
func (m Model) beginTag() (tea.Model, tea.Cmd) {
	if !m.pointerOn {
		m.statusLine = "Hover a slice or a break, then press t."
		return m, nil
	}

	day := m.app.Today()
	if m.hover.Seg >= 0 {
		segs := m.app.Segments()
		if m.hover.Seg >= len(segs) {
			return m, nil
		}
		seg := segs[m.hover.Seg]
		m.mode = modeTagWork
		m.tagTarget = tagTarget{sessionIndex: seg.Session}
		m.input.Placeholder = "session name (empty resets)"
		m.input.SetValue(seg.Tag)
	} else {
		instant := dial.TimeAt(m.lastTheta, day)
		gap, ok := timeline.GapAt(m.app.Gaps(), instant)
		if !ok {
			m.statusLine = "Nothing to label there."
			return m, nil
		}
		m.mode = modeTagBreak
		m.tagTarget = tagTarget{sessionIndex: -1, instant: instant}
		m.input.Placeholder = "break label (empty removes)"
		m.input.SetValue(m.app.BreakTagFor(gap))
	}
	m.input.CursorEnd()
	m.statusLine = ""
	return m, m.input.Focus()
}

func (m Model) beginAddTodo() (tea.Model, tea.Cmd) {
	m.mode = modeAddTodo
	m.input.Placeholder = "new todo"
	m.input.SetValue("")
	m.statusLine = ""
	return m, m.input.Focus()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m, nil
	}

	x, y := pointerUnits(msg.X, msg.Y)
	day := m.app.Today()
	now := m.app.NowMS()
	sessions := m.app.Store.Sessions
	segs := timeline.SegmentsForDay(day, now, m.gesture.Overlay(sessions))

	onDial := m.geom.Within(x, y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		hover := dial.HitTest(m.geom, x, y, day, segs, m.gesture.EdgeTolerance)
		m.gesture.Press(x, y, hover, segs)
	case tea.MouseActionMotion:
		if !onDial && m.gesture.Phase() != dial.PhaseDragging {
			m.gesture.Leave()
			m.pointerOn = false
			m.hover = dial.NoHover
			return m, nil
		}
		m.gesture.Move(m.geom, x, y, day, now, segs, sessions)
		// Recompute against the (possibly just promoted) overlay.
		segs = timeline.SegmentsForDay(day, now, m.gesture.Overlay(sessions))
		m.hover = dial.HitTest(m.geom, x, y, day, segs, m.gesture.EdgeTolerance)
		m.lastTheta = m.hover.Theta
		m.pointerOn = onDial
	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		act := m.gesture.Release(m.geom, x, y, day)
		m.app.Apply(act)
		switch act.Kind {
		case dial.ActionToggle:
			m.statusLine = toggleStatus(m.app.Running())
		case dial.ActionCommit:
			m.statusLine = "Adjusted session bounds."
		case dial.ActionDeleteSlice:
			m.statusLine = "Deleted the slice."
		}
	}
	return m, nil
}

// pointerUnits maps terminal cells to square dial units. A character cell
// is roughly twice as tall as wide, so rows count double.
func pointerUnits(col, row int) (float64, float64) {
	return float64(col), float64(row) * 2
}

// dialExtent is the cell region the dial renders into: the window minus
// the side panel and the bottom status rows.
func dialExtent(width, height int) (cols, rows int) {
	cols = width - panelWidth - 2
	if cols < 10 {
		cols = width
	}
	rows = height - 3
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

// dialGeometry fits the dial into the left portion of the window,
// leaving room for the side panel.
func dialGeometry(width, height int) dial.Geometry {
	cols, rows := dialExtent(width, height)
	cx := float64(cols) / 2
	cy := float64(rows - 1)
	r := cx
	if cy < r {
		r = cy
	}
	r -= 2
	if r < 5 {
		r = 5
	}
	return dial.Geometry{CX: cx, CY: cy, R: r}
}
