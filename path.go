package arbor

import "math"

// ellipseSegments is the number of line segments used to approximate an
// ellipse.
const ellipseSegments = 48

// Path is polygonal geometry made of closed subpaths. It is used for shape
// fills, masks and clipping.
type Path struct {
	subpaths [][]Point
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.subpaths = append(p.subpaths, []Point{{x, y}})
	return p
}

// LineTo adds a segment to the current subpath. A path without a current
// subpath starts one at (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	if len(p.subpaths) == 0 {
		return p.MoveTo(x, y)
	}
	last := len(p.subpaths) - 1
	p.subpaths[last] = append(p.subpaths[last], Point{x, y})
	return p
}

// Close ends the current subpath. Subpaths are always filled as closed
// polygons, so Close only matters for starting the next one.
func (p *Path) Close() *Path {
	if len(p.subpaths) > 0 {
		p.subpaths = append(p.subpaths, nil)
	}
	return p
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) *Path {
	return p.Polygon(Point{x, y}, Point{x + w, y}, Point{x + w, y + h}, Point{x, y + h})
}

// Polygon adds a closed subpath through pts.
func (p *Path) Polygon(pts ...Point) *Path {
	if len(pts) == 0 {
		return p
	}
	sp := make([]Point, len(pts))
	copy(sp, pts)
	p.subpaths = append(p.subpaths, sp)
	return p.Close()
}

// Ellipse adds a closed ellipse centred at (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry float64) *Path {
	pts := make([]Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		s, c := math.Sincos(a)
		pts[i] = Point{cx + rx*c, cy + ry*s}
	}
	return p.Polygon(pts...)
}

// Circle adds a closed circle centred at (cx, cy).
func (p *Path) Circle(cx, cy, r float64) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// IsEmpty reports whether the path encloses no area.
func (p *Path) IsEmpty() bool {
	if p == nil {
		return true
	}
	r, ok := p.Bounds()
	return !ok || r.IsEmpty()
}

// Bounds returns the bounds of every fillable subpath. The boolean is false
// when there is nothing to fill.
func (p *Path) Bounds() (Rectangle, bool) {
	if p == nil {
		return Rectangle{}, false
	}
	var pts []Point
	for _, sp := range p.subpaths {
		if len(sp) >= 3 {
			pts = append(pts, sp...)
		}
	}
	return BoundsOfPoints(pts...)
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	out := &Path{subpaths: make([][]Point, len(p.subpaths))}
	for i, sp := range p.subpaths {
		out.subpaths[i] = append([]Point(nil), sp...)
	}
	return out
}

// fillable returns the subpaths that can enclose area.
func (p *Path) fillable() [][]Point {
	out := p.subpaths[:0:0]
	for _, sp := range p.subpaths {
		if len(sp) >= 3 {
			out = append(out, sp)
		}
	}
	return out
}
