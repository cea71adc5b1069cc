package geom

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the default tolerance used by Point.Equals.
var Epsilon = 1e-10

// Point is a coordinate with an optional elevation Z and a free measure channel M.
type Point struct {
	X, Y, Z, M float64
}

// Pt returns a planar point with Z and M set to zero.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z, p.M + q.M}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z, p.M - q.M}
}

func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y, f * p.Z, f * p.M}
}

func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f, p.Z / f, p.M / f}
}

func (p Point) Neg() Point {
	return Point{-p.X, -p.Y, -p.Z, -p.M}
}

// Dot returns the dot product over X, Y and Z. M does not take part.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Det returns the planar determinant p.X*q.Y - p.Y*q.X, which is positive when q lies counter clockwise of p.
func (p Point) Det(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Cross returns the 3D cross product, M is zero.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Interpolate returns p + t*(q-p) on all four channels.
func (p Point) Interpolate(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// Equals is true when all channels are within Epsilon.
func (p Point) Equals(q Point) bool {
	return p.EqualsEps(q, Epsilon)
}

// EqualsEps is true when all channels are within eps.
func (p Point) EqualsEps(q Point, eps float64) bool {
	return scalar.EqualWithinAbs(p.X, q.X, eps) &&
		scalar.EqualWithinAbs(p.Y, q.Y, eps) &&
		scalar.EqualWithinAbs(p.Z, q.Z, eps) &&
		scalar.EqualWithinAbs(p.M, q.M, eps)
}

func (p Point) String() string {
	if p.Z == 0 && p.M == 0 {
		return fmt.Sprintf("(%g,%g)", p.X, p.Y)
	}
	return fmt.Sprintf("(%g,%g,%g,%g)", p.X, p.Y, p.Z, p.M)
}
