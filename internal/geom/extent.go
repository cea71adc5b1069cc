package geom

import (
	"fmt"
	"math"
)

// Extent is an axis-aligned bounding box over X, Y, Z and M. A NaN bound means the axis has not been
// bounded yet; folding any value into it replaces the NaN.
type Extent struct {
	Min, Max Point
}

// NewExtent returns an extent with every bound undefined.
func NewExtent() Extent {
	nan := math.NaN()
	return Extent{
		Min: Point{nan, nan, nan, nan},
		Max: Point{nan, nan, nan, nan},
	}
}

// PointExtent returns the degenerate extent around a single point.
func PointExtent(p Point) Extent {
	return Extent{Min: p, Max: p}
}

// Rect returns the planar extent spanning the two corners, in any order. Z and M are zero.
func Rect(x0, y0, x1, y1 float64) Extent {
	return Extent{
		Min: Point{X: math.Min(x0, x1), Y: math.Min(y0, y1)},
		Max: Point{X: math.Max(x0, x1), Y: math.Max(y0, y1)},
	}
}

func lower(cur, v float64) float64 {
	if math.IsNaN(cur) || v < cur {
		return v
	}
	return cur
}

func upper(cur, v float64) float64 {
	if math.IsNaN(cur) || cur < v {
		return v
	}
	return cur
}

// Union returns the smallest extent containing both e and f.
func (e Extent) Union(f Extent) Extent {
	return Extent{
		Min: Point{lower(e.Min.X, f.Min.X), lower(e.Min.Y, f.Min.Y), lower(e.Min.Z, f.Min.Z), lower(e.Min.M, f.Min.M)},
		Max: Point{upper(e.Max.X, f.Max.X), upper(e.Max.Y, f.Max.Y), upper(e.Max.Z, f.Max.Z), upper(e.Max.M, f.Max.M)},
	}
}

// UnionPoint returns the smallest extent containing e and p.
func (e Extent) UnionPoint(p Point) Extent {
	return e.Union(Extent{Min: p, Max: p})
}

// Intersect returns the overlap of e and f. The result may be empty (see IsEmpty), it never fails.
func (e Extent) Intersect(f Extent) Extent {
	return Extent{
		Min: Point{upper(e.Min.X, f.Min.X), upper(e.Min.Y, f.Min.Y), upper(e.Min.Z, f.Min.Z), upper(e.Min.M, f.Min.M)},
		Max: Point{lower(e.Max.X, f.Max.X), lower(e.Max.Y, f.Max.Y), lower(e.Max.Z, f.Max.Z), lower(e.Max.M, f.Max.M)},
	}
}

// IsUndefined is true when any planar bound is NaN.
func (e Extent) IsUndefined() bool {
	return math.IsNaN(e.Min.X) || math.IsNaN(e.Min.Y) || math.IsNaN(e.Max.X) || math.IsNaN(e.Max.Y)
}

// IsEmpty is true when the extent is undefined, inverted, or has zero width or height.
func (e Extent) IsEmpty() bool {
	return e.IsUndefined() || !(e.Min.X < e.Max.X) || !(e.Min.Y < e.Max.Y)
}

// IsValid is true for a defined extent with Min <= Max on X and Y. Degenerate boxes are valid.
func (e Extent) IsValid() bool {
	return !e.IsUndefined() && e.Min.X <= e.Max.X && e.Min.Y <= e.Max.Y
}

// Intersects reports whether e and f overlap on X and Y, where touching counts.
func (e Extent) Intersects(f Extent) bool {
	// NaN comparisons are false, so undefined extents never intersect
	return e.Min.X <= f.Max.X && f.Min.X <= e.Max.X && e.Min.Y <= f.Max.Y && f.Min.Y <= e.Max.Y
}

// Contains reports whether p lies inside or on the border of e on X and Y.
func (e Extent) Contains(p Point) bool {
	return e.Min.X <= p.X && p.X <= e.Max.X && e.Min.Y <= p.Y && p.Y <= e.Max.Y
}

func (e Extent) W() float64 {
	return e.Max.X - e.Min.X
}

func (e Extent) H() float64 {
	return e.Max.Y - e.Min.Y
}

// Area is the planar area, zero for undefined extents.
func (e Extent) Area() float64 {
	if e.IsUndefined() {
		return 0.0
	}
	return e.W() * e.H()
}

// Margin is half the planar perimeter.
func (e Extent) Margin() float64 {
	if e.IsUndefined() {
		return 0.0
	}
	return e.W() + e.H()
}

// Center returns the planar midpoint.
func (e Extent) Center() Point {
	return Point{X: (e.Min.X + e.Max.X) / 2.0, Y: (e.Min.Y + e.Max.Y) / 2.0}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%g %g %g %g]", e.Min.X, e.Min.Y, e.Max.X, e.Max.Y)
}
