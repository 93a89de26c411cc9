package arbor

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned rectangle. A rectangle with a non-positive
// width or height is empty.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Rect is shorthand for Rectangle{x, y, w, h}.
func Rect(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// SetValues overwrites all four fields.
func (r *Rectangle) SetValues(x, y, w, h float64) {
	r.X, r.Y, r.Width, r.Height = x, y, w, h
}

// Extend grows r in place so that it also covers the given rectangle.
func (r *Rectangle) Extend(x, y, w, h float64) {
	if x+w > r.X+r.Width {
		r.Width = x + w - r.X
	}
	if y+h > r.Y+r.Height {
		r.Height = y + h - r.Y
	}
	if x < r.X {
		r.Width += r.X - x
		r.X = x
	}
	if y < r.Y {
		r.Height += r.Y - y
		r.Y = y
	}
}

// Pad grows r in place by the given amounts on each side.
func (r *Rectangle) Pad(top, left, bottom, right float64) {
	r.X -= left
	r.Y -= top
	r.Width += left + right
	r.Height += top + bottom
}

// IsEmpty reports whether r has a non-positive width or height.
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns X + Width.
func (r Rectangle) Right() float64 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rectangle) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	r.Extend(o.X, o.Y, o.Width, o.Height)
	return r
}

// Intersection returns the overlapping region of r and o. The boolean is
// false when they do not overlap.
func (r Rectangle) Intersection(o Rectangle) (Rectangle, bool) {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.Right(), o.Right())
	y2 := math.Min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rectangle{}, false
	}
	return Rectangle{x1, y1, x2 - x1, y2 - y1}, true
}

// Intersects reports whether r and o overlap.
func (r Rectangle) Intersects(o Rectangle) bool {
	return o.X < r.Right() && r.X < o.Right() && o.Y < r.Bottom() && r.Y < o.Bottom()
}

func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(x=%g y=%g w=%g h=%g)", r.X, r.Y, r.Width, r.Height)
}

// BoundsOfPoints returns the axis-aligned bounds of pts. The boolean is false
// when pts is empty.
func BoundsOfPoints(pts ...Point) (Rectangle, bool) {
	if len(pts) == 0 {
		return Rectangle{}, false
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rectangle{minX, minY, maxX - minX, maxY - minY}, true
}

// TransformBounds returns the axis-aligned bounds of r after mapping its four
// corners through m.
func TransformBounds(r Rectangle, m Matrix2D) Rectangle {
	var pts [4]Point
	pts[0].X, pts[0].Y = m.TransformPoint(r.X, r.Y)
	pts[1].X, pts[1].Y = m.TransformPoint(r.Right(), r.Y)
	pts[2].X, pts[2].Y = m.TransformPoint(r.Right(), r.Bottom())
	pts[3].X, pts[3].Y = m.TransformPoint(r.X, r.Bottom())
	out, _ := BoundsOfPoints(pts[:]...)
	return out
}
