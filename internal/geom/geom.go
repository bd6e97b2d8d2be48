// Package geom holds the small amount of plane geometry the overlay
// packages share: points, sizes, rectangles and device grid snapping.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in container coordinates.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an origin plus a size. Origin is the top-left corner.
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for building a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

func (r Rect) MinX() float64 { return r.Origin.X }
func (r Rect) MinY() float64 { return r.Origin.Y }
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.W/2, Y: r.Origin.Y + r.Size.H/2}
}

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Intersects reports whether the two rectangles share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Inset shrinks the rectangle by dx on the left and right and dy on the
// top and bottom. Sizes never go negative.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		Origin: Point{X: r.Origin.X + dx, Y: r.Origin.Y + dy},
		Size:   Size{W: math.Max(0, r.Size.W-2*dx), H: math.Max(0, r.Size.H-2*dy)},
	}
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// Scaled scales the rectangle about its center.
func (r Rect) Scaled(factor float64) Rect {
	c := r.Center()
	w, h := r.Size.W*factor, r.Size.H*factor
	return Rect{Origin: Point{X: c.X - w/2, Y: c.Y - h/2}, Size: Size{W: w, H: h}}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.Origin.X, r.Origin.Y, r.Size.W, r.Size.H)
}

// Lerp interpolates between a and b. t is not clamped so spring curves
// may overshoot.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpRect interpolates every component of two rectangles.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		Origin: Point{X: Lerp(a.Origin.X, b.Origin.X, t), Y: Lerp(a.Origin.Y, b.Origin.Y, t)},
		Size:   Size{W: Lerp(a.Size.W, b.Size.W, t), H: Lerp(a.Size.H, b.Size.H, t)},
	}
}

// snapEpsilon absorbs float noise so 32.0000000001 does not ceil to 33.
const snapEpsilon = 1e-9

// Snap aligns r to a device grid of 1/scale points: the origin is rounded
// down and the size rounded up so adjacent rectangles never leave a
// hairline seam. A non-positive scale is treated as 1.
func Snap(r Rect, scale float64) Rect {
	if scale <= 0 {
		scale = 1
	}
	floor := func(v float64) float64 { return math.Floor(v*scale+snapEpsilon) / scale }
	ceil := func(v float64) float64 { return math.Ceil(v*scale-snapEpsilon) / scale }
	return Rect{
		Origin: Point{X: floor(r.Origin.X), Y: floor(r.Origin.Y)},
		Size:   Size{W: ceil(r.Size.W), H: ceil(r.Size.H)},
	}
}
