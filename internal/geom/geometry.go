package geom

import (
	"math"
	"strings"
)

// Type is the simple-features geometry type, optionally combined with the HasZ and HasM flags.
type Type int

const (
	GeometryType Type = iota
	PointType
	LineStringType
	PolygonType
	MultiPointType
	MultiLineStringType
	MultiPolygonType
	GeometryCollectionType
	CircularStringType
	CompoundCurveType
	CurvePolygonType
	MultiCurveType
	MultiSurfaceType
	CurveType
	SurfaceType
	PolyhedralSurfaceType
	TINType
	TriangleType
)

const (
	HasZ Type = 0x1000
	HasM Type = 0x2000
)

var typeNames = [...]string{
	"Geometry",
	"Point",
	"LineString",
	"Polygon",
	"MultiPoint",
	"MultiLineString",
	"MultiPolygon",
	"GeometryCollection",
	"CircularString",
	"CompoundCurve",
	"CurvePolygon",
	"MultiCurve",
	"MultiSurface",
	"Curve",
	"Surface",
	"PolyhedralSurface",
	"TIN",
	"Triangle",
}

// Base strips the dimension flags.
func (t Type) Base() Type {
	return t &^ (HasZ | HasM)
}

func (t Type) HasZ() bool {
	return t&HasZ != 0
}

func (t Type) HasM() bool {
	return t&HasM != 0
}

func (t Type) String() string {
	base := t.Base()
	if base < 0 || int(base) >= len(typeNames) {
		return "Unknown"
	}
	sb := strings.Builder{}
	sb.WriteString(typeNames[base])
	if t.HasZ() || t.HasM() {
		sb.WriteString(" ")
		if t.HasZ() {
			sb.WriteString("Z")
		}
		if t.HasM() {
			sb.WriteString("M")
		}
	}
	return sb.String()
}

// Geometry is an ordered ring of points. The edge from the last point back to the first is implied.
// Derived values are computed on every call, so concurrent readers are safe as long as nobody mutates
// the points.
type Geometry struct {
	Type   Type
	points []Point
}

func NewGeometry(typ Type, points ...Point) *Geometry {
	return &Geometry{
		Type:   typ,
		points: points,
	}
}

// Points returns the underlying slice, it must not be modified while other goroutines read g.
func (g *Geometry) Points() []Point {
	return g.points
}

func (g *Geometry) Push(ps ...Point) {
	g.points = append(g.points, ps...)
}

func (g *Geometry) Clear() {
	g.points = g.points[:0]
}

func (g *Geometry) Len() int {
	return len(g.points)
}

func (g *Geometry) Extent() Extent {
	return RingExtent(g.points)
}

// Area returns the signed shoelace area, positive for counter clockwise rings.
func (g *Geometry) Area() float64 {
	return Area(g.points)
}

// Centroid returns the area centroid. It is NaN for rings of less than three points or zero area.
func (g *Geometry) Centroid() Point {
	return Centroid(g.points)
}

// IsSimple is true when the ring does not intersect itself.
func (g *Geometry) IsSimple() bool {
	return !g.HasIntersections()
}

// HasIntersections stops at the first self-intersection found.
func (g *Geometry) HasIntersections() bool {
	return 0 < len(Intersections(g.points, true))
}

// FindIntersections returns every self-intersection point of the ring.
func (g *Geometry) FindIntersections() []Point {
	return Intersections(g.points, false)
}

// RingExtent folds every point of the ring into an extent.
func RingExtent(ring []Point) Extent {
	e := NewExtent()
	for _, p := range ring {
		e = e.UnionPoint(p)
	}
	return e
}

// Area returns the signed shoelace area of the closed ring.
func Area(ring []Point) float64 {
	if len(ring) < 3 {
		return 0.0
	}
	a := 0.0
	q := ring[len(ring)-1]
	for _, p := range ring {
		a += q.Det(p)
		q = p
	}
	return a / 2.0
}

// Centroid returns the area-weighted centroid of the closed ring, or a NaN point if it is degenerate.
func Centroid(ring []Point) Point {
	nan := math.NaN()
	if len(ring) < 3 {
		return Point{nan, nan, nan, nan}
	}
	a, cx, cy := 0.0, 0.0, 0.0
	q := ring[len(ring)-1]
	for _, p := range ring {
		d := q.Det(p)
		a += d
		cx += (q.X + p.X) * d
		cy += (q.Y + p.Y) * d
		q = p
	}
	if a == 0.0 {
		return Point{nan, nan, nan, nan}
	}
	return Point{X: cx / (3.0 * a), Y: cy / (3.0 * a)}
}
