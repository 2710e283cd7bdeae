package dial

import (
	"math"

	"github.com/jakobkreft/caketimer/internal/timeline"
)

// Gesture tuning. Distances are in the caller's dial units.
const (
	DefaultPromoteDistance   = 6.0
	DefaultEdgeTolerance     = 8.0
	DefaultDragMinMS         = 1000
	DefaultDeleteThresholdMS = 5000
)

// Phase is the explicit gesture state: idle, pressed-but-ambiguous, or a
// promoted drag.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

// ActionKind classifies what a completed gesture asks the timeline to do.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	// ActionToggle is a plain click on the dial: start or stop the timer.
	ActionToggle
	// ActionCommit writes the dragged bounds back to the session.
	ActionCommit
	// ActionDeleteSlice removes the session's slice of the day; the drag
	// shrank it under the delete threshold.
	ActionDeleteSlice
)

// Action is the outcome of a Release. Start and End are only meaningful
// for ActionCommit.
type Action struct {
	Kind         ActionKind
	SessionIndex int
	Start        int64
	End          int64
}

// Drag is the in-flight edit: which session edge moves, the bounds at
// promotion time, and the current preview bounds.
type Drag struct {
	SessionIndex int
	Edge         Edge
	OrigStart    int64
	OrigEnd      int64
	CurStart     int64
	CurEnd       int64
}

// Gesture disambiguates presses on the dial. A press near a segment edge
// becomes a drag once the pointer travels PromoteDistance; otherwise the
// release is a click. Call Press, Move, Release, and Leave from the
// pointer event stream.
type Gesture struct {
	PromoteDistance   float64
	EdgeTolerance     float64
	DragMinMS         int64
	DeleteThresholdMS int64

	phase            Phase
	downX, downY     float64
	clickPending     bool
	candidateEdge    Edge
	candidateSession int
	drag             *Drag
}

func NewGesture() *Gesture {
	return &Gesture{
		PromoteDistance:   DefaultPromoteDistance,
		EdgeTolerance:     DefaultEdgeTolerance,
		DragMinMS:         DefaultDragMinMS,
		DeleteThresholdMS: DefaultDeleteThresholdMS,
		candidateSession:  -1,
	}
}

func (g *Gesture) Phase() Phase { return g.phase }

// Dragging exposes the in-flight drag for preview rendering.
func (g *Gesture) Dragging() (Drag, bool) {
	if g.drag == nil {
		return Drag{}, false
	}
	return *g.drag, true
}

// Overlay substitutes the drag preview bounds into the session list so
// segment math and rendering see the edit before it commits. Without an
// in-flight drag the input is returned untouched.
func (g *Gesture) Overlay(sessions []timeline.Session) []timeline.Session {
	d := g.drag
	if d == nil || d.SessionIndex < 0 || d.SessionIndex >= len(sessions) {
		return sessions
	}
	out := make([]timeline.Session, len(sessions))
	copy(out, sessions)
	out[d.SessionIndex] = timeline.Session{
		Start: d.CurStart,
		End:   d.CurEnd,
		State: timeline.SessionClosed,
		Tag:   sessions[d.SessionIndex].Tag,
	}
	return out
}

// Press records the button-down point. A hover on a segment edge arms a
// drag candidate; promotion waits for Move.
func (g *Gesture) Press(x, y float64, hover Hover, segs []timeline.Segment) {
	g.phase = PhasePressed
	g.downX, g.downY = x, y
	g.clickPending = true
	g.candidateEdge = EdgeNone
	g.candidateSession = -1
	if hover.Seg >= 0 && hover.Seg < len(segs) && hover.Edge != EdgeNone {
		g.candidateEdge = hover.Edge
		g.candidateSession = segs[hover.Seg].Session
	}
}

// Move promotes an armed candidate to a drag once the pointer travels far
// enough, then keeps the preview bounds clamped as the pointer moves.
// segs must be computed over Overlay(sessions) so neighbor clamping sees
// the preview, not the stored bounds.
func (g *Gesture) Move(geom Geometry, x, y float64, day timeline.Day, now int64, segs []timeline.Segment, sessions []timeline.Session) {
	switch g.phase {
	case PhasePressed:
		if g.candidateSession < 0 {
			return
		}
		if math.Hypot(x-g.downX, y-g.downY) < g.PromoteDistance {
			return
		}
		if g.candidateSession >= len(sessions) {
			return
		}
		s := sessions[g.candidateSession]
		end := s.EffectiveEnd(now)
		g.drag = &Drag{
			SessionIndex: g.candidateSession,
			Edge:         g.candidateEdge,
			OrigStart:    s.Start,
			OrigEnd:      end,
			CurStart:     s.Start,
			CurEnd:       end,
		}
		g.clickPending = false
		g.phase = PhaseDragging
		g.updatePreview(geom, x, y, day, now, segs)
	case PhaseDragging:
		g.updatePreview(geom, x, y, day, now, segs)
	}
}

func (g *Gesture) updatePreview(geom Geometry, x, y float64, day timeline.Day, now int64, segs []timeline.Segment) {
	d := g.drag
	if d == nil {
		return
	}
	segIndex := -1
	for i, seg := range segs {
		if seg.Session == d.SessionIndex {
			segIndex = i
			break
		}
	}
	if segIndex < 0 {
		return
	}
	desired := TimeAt(geom.AngleAt(x, y), day)
	capped := CappedEdgeTime(segs, segIndex, d.Edge, desired, day, now)
	if d.Edge == EdgeStart {
		maxStart := d.CurEnd - g.DragMinMS
		if capped > maxStart {
			capped = maxStart
		}
		if capped < day.Start {
			capped = day.Start
		}
		d.CurStart = capped
	} else {
		minEnd := d.CurStart + g.DragMinMS
		if capped < minEnd {
			capped = minEnd
		}
		d.CurEnd = capped
	}
}

// Release resolves the gesture. A drag commits the preview bounds, or
// deletes the day slice when the day's portion of the preview shrank to
// the delete threshold or under. The clip matters for sessions spanning
// midnight: only today's slice decides deletion, and only today's slice
// is deleted. A press that never promoted toggles the timer if it stayed
// on the dial.
func (g *Gesture) Release(geom Geometry, x, y float64, day timeline.Day) Action {
	defer g.reset()

	if g.phase == PhaseDragging && g.drag != nil {
		d := g.drag
		sliceStart := d.CurStart
		if sliceStart < day.Start {
			sliceStart = day.Start
		}
		sliceEnd := d.CurEnd
		if sliceEnd > day.End {
			sliceEnd = day.End
		}
		if sliceEnd-sliceStart <= g.DeleteThresholdMS {
			return Action{Kind: ActionDeleteSlice, SessionIndex: d.SessionIndex}
		}
		return Action{
			Kind:         ActionCommit,
			SessionIndex: d.SessionIndex,
			Start:        d.CurStart,
			End:          d.CurEnd,
		}
	}

	if g.phase == PhasePressed && g.clickPending && geom.Within(x, y) {
		return Action{Kind: ActionToggle}
	}
	return Action{Kind: ActionNone}
}

// Leave handles the pointer exiting the dial area: an unpromoted press is
// abandoned, but an in-flight drag survives so a sloppy pointer path
// doesn't lose the edit.
func (g *Gesture) Leave() {
	if g.phase == PhaseDragging {
		return
	}
	g.reset()
}

func (g *Gesture) reset() {
	g.phase = PhaseIdle
	g.clickPending = false
	g.candidateEdge = EdgeNone
	g.candidateSession = -1
	g.drag = nil
}
