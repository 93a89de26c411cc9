package arbor

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func assertPixel(t *testing.T, c *Canvas, x, y int, want color.RGBA) {
	t.Helper()
	if got := c.Image().RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func assertAlpha(t *testing.T, c *Canvas, x, y int, want uint8) {
	t.Helper()
	got := c.Image().RGBAAt(x, y).A
	if d := int(got) - int(want); d < -1 || d > 1 {
		t.Errorf("alpha (%d,%d) = %d, want %d", x, y, got, want)
	}
}

func TestCanvasFillPath(t *testing.T) {
	c := NewCanvas(40, 40)
	c.FillPath(NewPath().Rect(10, 10, 20, 20), red)

	assertPixel(t, c, 10, 10, red)
	assertPixel(t, c, 29, 29, red)
	assertPixel(t, c, 30, 30, color.RGBA{})
	assertPixel(t, c, 5, 5, color.RGBA{})
}

func TestCanvasTransformSaveRestore(t *testing.T) {
	c := NewCanvas(40, 40)
	c.Save()
	c.Transform(NewMatrix(1, 0, 0, 1, 20, 0))
	c.FillPath(NewPath().Rect(0, 0, 5, 5), red)
	c.Restore()
	c.FillPath(NewPath().Rect(0, 0, 5, 5), blue)

	assertPixel(t, c, 22, 2, red)
	assertPixel(t, c, 2, 2, blue)
	if !c.Matrix().IsIdentity() {
		t.Errorf("Matrix after Restore = %v", c.Matrix())
	}

	// Unbalanced Restore is ignored.
	c.Restore()
}

func TestCanvasGlobalAlpha(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetGlobalAlpha(0.5)
	c.FillPath(NewPath().Rect(0, 0, 10, 10), red)
	assertAlpha(t, c, 5, 5, 128)

	c.SetGlobalAlpha(7)
	assertNear(t, "clamped alpha", c.GlobalAlpha(), 1)
	c.SetGlobalAlpha(-1)
	assertNear(t, "clamped alpha", c.GlobalAlpha(), 0)
}

func TestCanvasClip(t *testing.T) {
	c := NewCanvas(40, 40)
	c.Save()
	c.Clip(NewPath().Rect(0, 0, 20, 40))
	c.Clip(NewPath().Rect(10, 0, 30, 40))
	c.FillPath(NewPath().Rect(0, 0, 40, 40), red)
	c.Restore()

	assertPixel(t, c, 5, 5, color.RGBA{})
	assertPixel(t, c, 15, 5, red)
	assertPixel(t, c, 25, 5, color.RGBA{})

	// Clip is restored.
	c.FillPath(NewPath().Rect(30, 30, 10, 10), blue)
	assertPixel(t, c, 35, 35, blue)
}

func TestCanvasEmptyClip(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Clip(NewPath())
	c.FillPath(NewPath().Rect(0, 0, 10, 10), red)
	assertAlpha(t, c, 5, 5, 0)
}

func TestCanvasBlendModes(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillPath(NewPath().Rect(0, 0, 20, 10), red)

	c.SetBlendMode(BlendDestinationOut)
	c.FillPath(NewPath().Rect(0, 0, 10, 10), blue)
	assertAlpha(t, c, 5, 5, 0)
	assertPixel(t, c, 15, 5, red)

	c.SetBlendMode(BlendInherit)
	if c.BlendMode() != BlendDestinationOut {
		t.Errorf("BlendInherit changed the mode to %v", c.BlendMode())
	}

	c.SetBlendMode(BlendCopy)
	c.FillPath(NewPath().Rect(0, 0, 5, 5), blue)
	assertPixel(t, c, 2, 2, blue)
	// Copy replaces the whole surface outside the shape with transparency.
	assertAlpha(t, c, 15, 5, 0)
}

func TestCanvasShadow(t *testing.T) {
	c := NewCanvas(40, 40)
	c.SetShadow(&Shadow{Color: blue, OffsetX: 10, OffsetY: 10})
	c.FillPath(NewPath().Rect(0, 0, 10, 10), red)

	assertPixel(t, c, 5, 5, red)
	assertPixel(t, c, 15, 15, blue)
}

func TestCanvasDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			if x < 2 {
				src.SetRGBA(x, y, red)
			} else {
				src.SetRGBA(x, y, blue)
			}
		}
	}

	c := NewCanvas(20, 20)
	c.SetTransform(NewMatrix(1, 0, 0, 1, 10, 10))
	c.DrawImage(src, image.Rect(2, 0, 4, 4))

	assertPixel(t, c, 10, 10, blue)
	assertPixel(t, c, 11, 13, blue)
	assertPixel(t, c, 12, 10, color.RGBA{})
	assertPixel(t, c, 9, 10, color.RGBA{})
}

func TestCanvasDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.SetRGBA(x, y, red)
		}
	}
	c := NewCanvas(10, 10)
	c.SetTransform(NewMatrix(3, 0, 0, 3, 0, 0))
	c.DrawImage(src, src.Bounds())
	assertPixel(t, c, 5, 5, red)
	assertPixel(t, c, 7, 7, color.RGBA{})
}

func TestCanvasTaint(t *testing.T) {
	c := NewCanvas(4, 4)
	if _, err := c.AlphaAt(0, 0); err != nil {
		t.Fatalf("clean canvas read: %v", err)
	}
	c.Taint()
	if _, err := c.AlphaAt(0, 0); !errors.Is(err, ErrTaintedSurface) {
		t.Errorf("tainted read error = %v, want ErrTaintedSurface", err)
	}

	dst := NewCanvas(4, 4)
	dst.DrawCanvas(c)
	if !dst.Tainted() {
		t.Error("drawing a tainted canvas should taint the target")
	}

	c.Resize(4, 4)
	if c.Tainted() {
		t.Error("Resize should clear taint")
	}
}

func TestCanvasAlphaAtOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(red)
	a, err := c.AlphaAt(10, 10)
	if err != nil || a != 0 {
		t.Errorf("AlphaAt out of bounds = (%d, %v), want (0, nil)", a, err)
	}
	a, _ = c.AlphaAt(1, 1)
	if a != 255 {
		t.Errorf("AlphaAt = %d, want 255", a)
	}
}

func TestCanvasClearRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Fill(red)
	c.ClearRect(0, 0, 5, 10)
	assertPixel(t, c, 2, 2, color.RGBA{})
	assertPixel(t, c, 7, 2, red)
	c.Clear()
	assertPixel(t, c, 7, 2, color.RGBA{})
}
