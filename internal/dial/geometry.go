// Package dial turns a raw pointer stream over a 24-hour dial into
// timeline edits. It owns the gesture state machine that disambiguates
// hover, click-to-toggle, drag-to-resize, and delete-by-shrink, plus the
// angular geometry mapping pointer positions to wall-clock instants.
// The package is presentation-agnostic: callers feed it coordinates in
// whatever square unit space they render in.
package dial

import (
	"math"

	"github.com/jakobkreft/caketimer/internal/timeline"
)

const tau = 2 * math.Pi

// Geometry describes the dial's placement in the caller's coordinate
// space: center and radius.
type Geometry struct {
	CX float64
	CY float64
	R  float64
}

// AngleAt maps a point to the dial angle in [0, tau): zero at twelve
// o'clock, increasing clockwise (screen y grows downward).
func (g Geometry) AngleAt(x, y float64) float64 {
	a := math.Atan2(y-g.CY, x-g.CX) + math.Pi/2
	return math.Mod(math.Mod(a, tau)+tau, tau)
}

// Within reports whether the point lies on the dial disk.
func (g Geometry) Within(x, y float64) bool {
	return math.Hypot(x-g.CX, y-g.CY) <= g.R
}

// ThetaAt maps an instant to its dial angle for the day window.
func ThetaAt(ms int64, day timeline.Day) float64 {
	seconds := float64(ms-day.Start) / 1000
	return seconds / 86400 * tau
}

// TimeAt maps a dial angle back to a wall-clock instant, rounded to the
// nearest second.
func TimeAt(theta float64, day timeline.Day) int64 {
	seconds := theta / tau * 86400
	return day.Start + int64(math.Round(seconds))*1000
}

// Edge identifies which boundary of a segment the pointer is near.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeStart
	EdgeEnd
)

// Hover is the read-only pointer target used for cursor affordance and
// tooltip content. Seg is -1 when the pointer is over no segment.
type Hover struct {
	Seg   int
	Theta float64
	Edge  Edge
}

// NoHover is the hover state when the pointer is off the dial.
var NoHover = Hover{Seg: -1}

// HitTest resolves which segment (and which edge region, within
// tolerancePx of arc distance) the point lands on. The edge tolerance
// extends past the arc itself, so a pointer hovering just outside a
// boundary can still grab it; this also absorbs the float rounding a
// pointer placed exactly on a boundary picks up through Atan2.
func HitTest(g Geometry, x, y float64, day timeline.Day, segs []timeline.Segment, tolerancePx float64) Hover {
	theta := g.AngleAt(x, y)
	hover := Hover{Seg: -1, Theta: theta}
	if g.R <= 0 {
		return hover
	}
	threshold := tolerancePx / g.R
	for i, seg := range segs {
		a0 := ThetaAt(seg.StartMS, day)
		a1 := ThetaAt(seg.EndMS, day)
		ds := math.Abs(theta - a0)
		de := math.Abs(theta - a1)
		inside := theta >= a0 && theta <= a1
		if !inside && ds >= threshold && de >= threshold {
			continue
		}
		hover.Seg = i
		if math.Min(ds, de) < threshold {
			if ds < de {
				hover.Edge = EdgeStart
			} else {
				hover.Edge = EdgeEnd
			}
		}
		break
	}
	return hover
}

// CappedEdgeTime clamps a desired edge instant so the moving edge cannot
// cross the segment's own opposite edge, a neighboring segment, the day
// bounds, or "now".
func CappedEdgeTime(segs []timeline.Segment, segIndex int, edge Edge, desired int64, day timeline.Day, now int64) int64 {
	if segIndex < 0 || segIndex >= len(segs) {
		return desired
	}
	seg := segs[segIndex]
	if edge == EdgeStart {
		minT := day.Start
		if segIndex > 0 && segs[segIndex-1].EndMS > minT {
			minT = segs[segIndex-1].EndMS
		}
		maxT := seg.EndMS
		if now < maxT {
			maxT = now
		}
		return clamp64(desired, minT, maxT)
	}
	minT := seg.StartMS
	maxT := day.End
	if now < maxT {
		maxT = now
	}
	if segIndex < len(segs)-1 && segs[segIndex+1].StartMS < maxT {
		maxT = segs[segIndex+1].StartMS
	}
	return clamp64(desired, minT, maxT)
}

func clamp64(n, lo, hi int64) int64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
