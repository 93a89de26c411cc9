package arbor

import "image/color"

// Shape is a Drawable that fills a Path with a solid color. It can also be
// used as a mask or hit area.
type Shape struct {
	Path *Path
	Fill color.Color
}

// NewShape creates a node that fills path with fill.
func NewShape(name string, path *Path, fill color.Color) *Node {
	return NewNode(name, &Shape{Path: path, Fill: fill})
}

// NewRect creates a node with a filled rectangle at (0, 0).
func NewRect(name string, w, h float64, fill color.Color) *Node {
	return NewShape(name, NewPath().Rect(0, 0, w, h), fill)
}

// IsVisible reports whether the shape has any area to fill.
func (s *Shape) IsVisible() bool {
	return !s.Path.IsEmpty()
}

// Draw fills the path into c.
func (s *Shape) Draw(c *Canvas, ignoreCache bool) bool {
	c.FillPath(s.Path, s.Fill)
	return true
}

// Bounds returns the bounds of the path.
func (s *Shape) Bounds() (Rectangle, bool) {
	return s.Path.Bounds()
}

// MaskPath returns the path, letting a shape node act as a mask.
func (s *Shape) MaskPath() *Path {
	return s.Path
}

// CloneDrawable returns a copy with its own path.
func (s *Shape) CloneDrawable() Drawable {
	return &Shape{Path: s.Path.Clone(), Fill: s.Fill}
}
