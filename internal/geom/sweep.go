package geom

import (
	"math"
	"slices"
	"sort"

	"github.com/google/btree"
)

// Self-intersection of a closed ring by a Bentley-Ottmann plane sweep. Events are kept in an
// ordered set, the active segments in a slice ordered bottom to top at the sweep position.

type eventKind int

const (
	rightEvent eventKind = iota // ends are handled before crossings and starts at the same point
	crossEvent
	leftEvent
)

type segment struct {
	idx  int
	a, b Point // ring order
	l, r Point // sweep order, l < r by x then y
}

func newSegment(idx int, a, b Point) *segment {
	s := &segment{idx: idx, a: a, b: b, l: a, r: b}
	if b.X < a.X || b.X == a.X && b.Y < a.Y {
		s.l, s.r = b, a
	}
	return s
}

func (s *segment) vertical() bool {
	return s.l.X == s.r.X
}

func (s *segment) slope() float64 {
	if s.vertical() {
		return math.Inf(1)
	}
	return (s.r.Y - s.l.Y) / (s.r.X - s.l.X)
}

// yAt returns the height of the segment at the sweep position (x,y). Vertical segments follow the
// sweep along their span.
func (s *segment) yAt(x, y float64) float64 {
	if s.vertical() {
		return math.Max(s.l.Y, math.Min(y, s.r.Y))
	} else if x <= s.l.X {
		return s.l.Y
	} else if s.r.X <= x {
		return s.r.Y
	}
	return s.l.Y + (x-s.l.X)*(s.r.Y-s.l.Y)/(s.r.X-s.l.X)
}

// intersect returns the crossing of two segments. Parallel and collinear segments never cross.
func (s *segment) intersect(o *segment) (Point, bool) {
	l1 := s.b.Sub(s.a)
	l2 := o.b.Sub(o.a)
	d := l1.Det(l2)
	if d == 0.0 {
		return Point{}, false
	}
	ao := s.a.Sub(o.a)
	t := l2.Det(ao) / d
	u := l1.Det(ao) / d
	if t < 0.0 || 1.0 < t || u < 0.0 || 1.0 < u {
		return Point{}, false
	}
	// crossings at an end point are exact
	switch {
	case t == 0.0:
		return s.a, true
	case t == 1.0:
		return s.b, true
	case u == 0.0:
		return o.a, true
	case u == 1.0:
		return o.b, true
	}
	return s.a.Interpolate(s.b, t), true
}

type sweepEvent struct {
	Point
	kind   eventKind
	seq    int
	s1, s2 *segment
}

func lessEvent(a, b *sweepEvent) bool {
	if a.X != b.X {
		return a.X < b.X
	} else if a.Y != b.Y {
		return a.Y < b.Y
	} else if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.seq < b.seq
}

type sweeper struct {
	n      int
	queue  *btree.BTreeG[*sweepEvent]
	status []*segment
	seq    int
	tested map[[2]int]bool

	ends map[[2]float64][]*segment // segments by end point

	cur    *sweepEvent
	seen   map[[2]float64]bool
	points []Point
}

func (sw *sweeper) push(e *sweepEvent) {
	e.seq = sw.seq
	sw.seq++
	sw.queue.ReplaceOrInsert(e)
}

func (sw *sweeper) adjacent(s, o *segment) bool {
	return (s.idx+1)%sw.n == o.idx || (o.idx+1)%sw.n == s.idx
}

// check queues the crossing of s and o once per pair. Edges sharing a ring vertex are skipped.
func (sw *sweeper) check(s, o *segment) {
	if s == nil || o == nil || sw.adjacent(s, o) {
		return
	}
	key := [2]int{min(s.idx, o.idx), max(s.idx, o.idx)}
	if sw.tested[key] {
		return
	}
	sw.tested[key] = true

	p, ok := s.intersect(o)
	if !ok {
		return
	}
	e := &sweepEvent{Point: p, kind: crossEvent, s1: s, s2: o}
	if lessPoint(p, sw.cur.Point) {
		// rounding put the crossing behind the sweep line
		e.X, e.Y = sw.cur.X, sw.cur.Y
	}
	sw.push(e)
}

func lessPoint(p, q Point) bool {
	return p.X < q.X || p.X == q.X && p.Y < q.Y
}

// below reports whether active segment a lies under s at the sweep position. Ties go to the smaller
// slope, which is the lower one right of the sweep line.
func below(at *sweepEvent, a, s *segment) bool {
	ya := a.yAt(at.X, at.Y)
	tol := Epsilon * math.Max(1.0, math.Abs(at.Y))
	if ya < at.Y-tol {
		return true
	} else if at.Y+tol < ya {
		return false
	} else if sa, ss := a.slope(), s.slope(); sa != ss {
		return sa < ss
	}
	return a.idx < s.idx
}

func (sw *sweeper) insert(s *segment) int {
	i := sort.Search(len(sw.status), func(i int) bool {
		return !below(sw.cur, sw.status[i], s)
	})
	sw.status = slices.Insert(sw.status, i, s)
	return i
}

func (sw *sweeper) at(i int) *segment {
	if i < 0 || len(sw.status) <= i {
		return nil
	}
	return sw.status[i]
}

func (sw *sweeper) record(p Point) {
	key := [2]float64{p.X, p.Y}
	if sw.seen[key] {
		return
	}
	sw.seen[key] = true
	sw.points = append(sw.points, p)
}

// vertex records p when a segment with an end at p meets another non-adjacent segment there. Such
// pairs are missed by neighbour tests alone: one segment may end where the other starts, or they may
// be separated in the status by a collinear segment.
func (sw *sweeper) vertex(p Point) bool {
	ends := sw.ends[[2]float64{p.X, p.Y}]
	others := append(slices.Clone(ends), sw.status...)
	for _, s := range ends {
		for _, o := range others {
			if s == o || sw.adjacent(s, o) {
				continue
			} else if q, ok := s.intersect(o); ok && q.X == p.X && q.Y == p.Y {
				sw.record(q)
				return true
			}
		}
	}
	return false
}

// cross reorders the segments meeting at a crossing. Everything between the pair passes through the
// same point, so the block is sorted by slope, which is their order right of the crossing.
func (sw *sweeper) cross(e *sweepEvent) {
	i := slices.Index(sw.status, e.s1)
	j := slices.Index(sw.status, e.s2)
	if i < 0 || j < 0 {
		// one of them already ended at this point
		return
	}
	lo, hi := min(i, j), max(i, j)
	slices.SortStableFunc(sw.status[lo:hi+1], func(a, b *segment) int {
		sa, sb := a.slope(), b.slope()
		if sa < sb {
			return -1
		} else if sb < sa {
			return 1
		}
		return 0
	})
	sw.check(sw.at(lo-1), sw.at(lo))
	sw.check(sw.at(hi), sw.at(hi+1))
}

// Intersections returns the self-intersection points of the closed ring. Consecutive duplicate
// points are ignored, segments sharing a ring vertex are not tested against each other and
// collinear overlaps are not reported. With abortOnFirst set it returns after the first one.
func Intersections(ring []Point, abortOnFirst bool) []Point {
	pts := make([]Point, 0, len(ring))
	for _, p := range ring {
		if 0 < len(pts) && pts[len(pts)-1].X == p.X && pts[len(pts)-1].Y == p.Y {
			continue
		}
		pts = append(pts, p)
	}
	for 1 < len(pts) && pts[0].X == pts[len(pts)-1].X && pts[0].Y == pts[len(pts)-1].Y {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil
	}

	sw := &sweeper{
		n:      len(pts),
		queue:  btree.NewG(16, lessEvent),
		tested: map[[2]int]bool{},
		ends:   map[[2]float64][]*segment{},
		seen:   map[[2]float64]bool{},
	}
	for i := range pts {
		s := newSegment(i, pts[i], pts[(i+1)%len(pts)])
		sw.push(&sweepEvent{Point: s.l, kind: leftEvent, s1: s})
		sw.push(&sweepEvent{Point: s.r, kind: rightEvent, s1: s})
		for _, p := range []Point{s.l, s.r} {
			key := [2]float64{p.X, p.Y}
			sw.ends[key] = append(sw.ends[key], s)
		}
	}

	for 0 < sw.queue.Len() {
		e, _ := sw.queue.DeleteMin()
		if sw.cur == nil || sw.cur.X != e.X || sw.cur.Y != e.Y {
			// first event at a new point
			if sw.vertex(e.Point) && abortOnFirst {
				return sw.points
			}
		}
		sw.cur = e
		switch e.kind {
		case leftEvent:
			i := sw.insert(e.s1)
			sw.check(sw.at(i-1), e.s1)
			sw.check(e.s1, sw.at(i+1))
		case rightEvent:
			i := slices.Index(sw.status, e.s1)
			if i < 0 {
				continue
			}
			below, above := sw.at(i-1), sw.at(i+1)
			sw.status = slices.Delete(sw.status, i, i+1)
			sw.check(below, above)
		case crossEvent:
			p, _ := e.s1.intersect(e.s2)
			sw.record(p)
			if abortOnFirst {
				return sw.points
			}
			sw.cross(e)
		}
	}
	return sw.points
}
