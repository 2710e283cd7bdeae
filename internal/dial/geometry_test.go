package dial

import (
	"math"
	"testing"
	"time"

	"github.com/jakobkreft/caketimer/internal/timeline"
)

var testBase = time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local)

func testDay() timeline.Day {
	return timeline.DayOf(testBase)
}

func at(t *testing.T, hour, min int) int64 {
	t.Helper()
	return testBase.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute).UnixMilli()
}

// point places a pointer at the given dial angle and distance from center.
func point(g Geometry, theta, dist float64) (float64, float64) {
	return g.CX + dist*math.Sin(theta), g.CY - dist*math.Cos(theta)
}

func testGeom() Geometry {
	return Geometry{CX: 100, CY: 100, R: 50}
}

func TestAngleAtCardinalPoints(t *testing.T) {
	g := testGeom()
	cases := []struct {
		x, y float64
		want float64
	}{
		{g.CX, g.CY - g.R, 0},
		{g.CX + g.R, g.CY, math.Pi / 2},
		{g.CX, g.CY + g.R, math.Pi},
		{g.CX - g.R, g.CY, 3 * math.Pi / 2},
	}
	for _, c := range cases {
		got := g.AngleAt(c.x, c.y)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("AngleAt(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestAngleRoundTripsThroughPoint(t *testing.T) {
	g := testGeom()
	for _, theta := range []float64{0.1, 1.3, math.Pi, 4.7, 6.2} {
		x, y := point(g, theta, 30)
		got := g.AngleAt(x, y)
		if math.Abs(got-theta) > 1e-9 {
			t.Fatalf("AngleAt(point(%v)) = %v", theta, got)
		}
	}
}

func TestThetaAtMapsClockPositions(t *testing.T) {
	day := testDay()
	if got := ThetaAt(day.Start, day); got != 0 {
		t.Fatalf("midnight theta = %v, want 0", got)
	}
	if got := ThetaAt(at(t, 12, 0), day); math.Abs(got-math.Pi) > 1e-9 {
		t.Fatalf("noon theta = %v, want pi", got)
	}
	if got := ThetaAt(at(t, 6, 0), day); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("06:00 theta = %v, want pi/2", got)
	}
}

func TestTimeAtRoundsToWholeSeconds(t *testing.T) {
	day := testDay()
	got := TimeAt(ThetaAt(at(t, 9, 30), day), day)
	if got != at(t, 9, 30) {
		t.Fatalf("round trip = %d, want %d", got, at(t, 9, 30))
	}
	if rem := (got - day.Start) % 1000; rem != 0 {
		t.Fatalf("TimeAt not second-aligned, remainder %dms", rem)
	}

	// A theta a third of a millisecond off still lands on the second.
	theta := ThetaAt(at(t, 9, 30), day) + 0.3/86400000*tau
	if got := TimeAt(theta, day); got != at(t, 9, 30) {
		t.Fatalf("jittered round trip = %d, want %d", got, at(t, 9, 30))
	}
}

func TestWithin(t *testing.T) {
	g := testGeom()
	if !g.Within(g.CX+g.R, g.CY) {
		t.Fatalf("rim point reported outside")
	}
	if g.Within(g.CX+g.R+1, g.CY) {
		t.Fatalf("point past the rim reported inside")
	}
}

func TestHitTestFindsSegmentAndEdges(t *testing.T) {
	g := testGeom()
	day := testDay()
	segs := []timeline.Segment{
		{StartMS: at(t, 9, 0), EndMS: at(t, 11, 0), Session: 0},
		{StartMS: at(t, 14, 0), EndMS: at(t, 15, 0), Session: 1},
	}

	// Mid-segment: body hit, no edge.
	x, y := point(g, ThetaAt(at(t, 10, 0), day), 30)
	h := HitTest(g, x, y, day, segs, DefaultEdgeTolerance)
	if h.Seg != 0 || h.Edge != EdgeNone {
		t.Fatalf("mid-segment hover = %+v, want seg 0 body", h)
	}

	// On the start boundary.
	x, y = point(g, ThetaAt(at(t, 9, 0), day), 30)
	h = HitTest(g, x, y, day, segs, DefaultEdgeTolerance)
	if h.Seg != 0 || h.Edge != EdgeStart {
		t.Fatalf("start hover = %+v, want seg 0 start edge", h)
	}

	// Just inside the end boundary.
	x, y = point(g, ThetaAt(at(t, 14, 58), day), 30)
	h = HitTest(g, x, y, day, segs, DefaultEdgeTolerance)
	if h.Seg != 1 || h.Edge != EdgeEnd {
		t.Fatalf("end hover = %+v, want seg 1 end edge", h)
	}

	// Just outside the start boundary, still within tolerance: the edge
	// must be grabbable from either side of the arc.
	x, y = point(g, ThetaAt(at(t, 8, 58), day), 30)
	h = HitTest(g, x, y, day, segs, DefaultEdgeTolerance)
	if h.Seg != 0 || h.Edge != EdgeStart {
		t.Fatalf("outside-start hover = %+v, want seg 0 start edge", h)
	}

	// A break between segments hits nothing.
	x, y = point(g, ThetaAt(at(t, 12, 0), day), 30)
	h = HitTest(g, x, y, day, segs, DefaultEdgeTolerance)
	if h.Seg != -1 {
		t.Fatalf("gap hover = %+v, want no segment", h)
	}
}

func TestHitTestToleranceScalesWithRadius(t *testing.T) {
	day := testDay()
	segs := []timeline.Segment{{StartMS: at(t, 9, 0), EndMS: at(t, 12, 0), Session: 0}}

	// On a big dial the same pixel tolerance covers a narrower arc, so a
	// point 30 minutes into the segment is body on the big dial but edge
	// on the small one.
	theta := ThetaAt(at(t, 9, 30), day)

	big := Geometry{CX: 0, CY: 0, R: 400}
	x, y := point(big, theta, 200)
	if h := HitTest(big, x, y, day, segs, DefaultEdgeTolerance); h.Edge != EdgeNone {
		t.Fatalf("big dial hover = %+v, want body", h)
	}

	small := Geometry{CX: 0, CY: 0, R: 30}
	x, y = point(small, theta, 15)
	if h := HitTest(small, x, y, day, segs, DefaultEdgeTolerance); h.Edge != EdgeStart {
		t.Fatalf("small dial hover = %+v, want start edge", h)
	}
}

func TestCappedEdgeTimeClampsNeighborsDayAndNow(t *testing.T) {
	day := testDay()
	segs := []timeline.Segment{
		{StartMS: at(t, 9, 0), EndMS: at(t, 10, 0), Session: 0},
		{StartMS: at(t, 11, 0), EndMS: at(t, 12, 0), Session: 1},
	}
	now := at(t, 13, 0)

	// End of the first segment cannot cross into the second.
	if got := CappedEdgeTime(segs, 0, EdgeEnd, at(t, 11, 30), day, now); got != at(t, 11, 0) {
		t.Fatalf("end capped at %d, want neighbor start %d", got, at(t, 11, 0))
	}

	// Start of the second segment cannot cross back over the first's end.
	if got := CappedEdgeTime(segs, 1, EdgeStart, at(t, 9, 30), day, now); got != at(t, 10, 0) {
		t.Fatalf("start capped at %d, want neighbor end %d", got, at(t, 10, 0))
	}

	// End cannot run past now.
	if got := CappedEdgeTime(segs, 1, EdgeEnd, at(t, 18, 0), day, now); got != now {
		t.Fatalf("end capped at %d, want now %d", got, now)
	}

	// Start of the first segment stops at the day boundary.
	if got := CappedEdgeTime(segs, 0, EdgeStart, day.Start-timeline.MsPerHour, day, now); got != day.Start {
		t.Fatalf("start capped at %d, want day start %d", got, day.Start)
	}

	// Edges cannot cross each other.
	if got := CappedEdgeTime(segs, 0, EdgeEnd, at(t, 8, 0), day, now); got != at(t, 9, 0) {
		t.Fatalf("end capped at %d, want own start %d", got, at(t, 9, 0))
	}
}
