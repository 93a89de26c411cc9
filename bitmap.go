package arbor

import "image"

// Bitmap is a Drawable that draws an image with its top-left corner at the
// local origin.
type Bitmap struct {
	Image image.Image

	// SourceRect limits drawing to part of Image. nil draws the whole image.
	SourceRect *image.Rectangle

	// Opaque marks the pixels as unreadable, like foreign-origin content in a
	// browser. Drawing an opaque bitmap taints the target surface.
	Opaque bool
}

// NewBitmap creates a node that draws img.
func NewBitmap(name string, img image.Image) *Node {
	return NewNode(name, &Bitmap{Image: img})
}

func (b *Bitmap) sourceRect() image.Rectangle {
	if b.Image == nil {
		return image.Rectangle{}
	}
	if b.SourceRect != nil {
		return b.SourceRect.Intersect(b.Image.Bounds())
	}
	return b.Image.Bounds()
}

// IsVisible reports whether there is anything to draw.
func (b *Bitmap) IsVisible() bool {
	return !b.sourceRect().Empty()
}

// Draw draws the image into c.
func (b *Bitmap) Draw(c *Canvas, ignoreCache bool) bool {
	if b.Opaque {
		c.Taint()
	}
	c.DrawImage(b.Image, b.sourceRect())
	return true
}

// Bounds returns (0, 0, w, h) of the drawn region.
func (b *Bitmap) Bounds() (Rectangle, bool) {
	r := b.sourceRect()
	if r.Empty() {
		return Rectangle{}, false
	}
	return Rect(0, 0, float64(r.Dx()), float64(r.Dy())), true
}

// CloneDrawable returns a copy sharing the same image.
func (b *Bitmap) CloneDrawable() Drawable {
	out := *b
	if b.SourceRect != nil {
		r := *b.SourceRect
		out.SourceRect = &r
	}
	return &out
}
