package arbor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is a software raster surface with a 2D-context style state stack.
// Pixels are stored premultiplied in an *image.RGBA.
//
// The state saved by Save and restored by Restore is the transform, global
// alpha, blend mode, shadow and clip region.
type Canvas struct {
	img   *image.RGBA
	state canvasState
	stack []canvasState

	// ImageSmoothing selects bilinear sampling for DrawImage. Nearest
	// neighbour is used otherwise.
	ImageSmoothing bool

	raster  *vector.Rasterizer
	tainted bool
}

type canvasState struct {
	transform Matrix2D
	alpha     float64
	blend     BlendMode
	shadow    *Shadow

	// clip is nil when unclipped. A clip mask is never mutated after it is
	// installed, so saved states may share it.
	clip *image.Alpha
}

func defaultCanvasState() canvasState {
	return canvasState{transform: IdentityMatrix(), alpha: 1, blend: BlendSourceOver}
}

// NewCanvas creates a transparent canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		state: defaultCanvasState(),
	}
}

// Width returns the pixel width.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the pixel height.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image. It is shared, not copied.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Resize replaces the backing image with a transparent one of the new size
// and resets all state, including taint.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	c.state = defaultCanvasState()
	c.stack = c.stack[:0]
	c.tainted = false
}

// Save pushes the current state.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the most recently saved state. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m Matrix2D) { c.state.transform = m }

// Transform appends m to the current transform.
func (c *Canvas) Transform(m Matrix2D) { c.state.transform = c.state.transform.Append(m) }

// Matrix returns the current transform.
func (c *Canvas) Matrix() Matrix2D { return c.state.transform }

// SetGlobalAlpha sets the alpha applied to everything drawn. Values are
// clamped to [0, 1].
func (c *Canvas) SetGlobalAlpha(a float64) { c.state.alpha = math.Max(0, math.Min(1, a)) }

// GlobalAlpha returns the current global alpha.
func (c *Canvas) GlobalAlpha() float64 { return c.state.alpha }

// SetBlendMode sets the compositing mode. BlendInherit leaves the mode
// unchanged.
func (c *Canvas) SetBlendMode(b BlendMode) {
	if b != BlendInherit {
		c.state.blend = b
	}
}

// BlendMode returns the current compositing mode.
func (c *Canvas) BlendMode() BlendMode { return c.state.blend }

// SetShadow sets the shadow drawn under path fills. nil disables it.
func (c *Canvas) SetShadow(s *Shadow) { c.state.shadow = s }

// Shadow returns the current shadow.
func (c *Canvas) Shadow() *Shadow { return c.state.shadow }

// Taint marks the surface unreadable. Every later AlphaAt fails with
// ErrTaintedSurface until the canvas is resized.
func (c *Canvas) Taint() { c.tainted = true }

// Tainted reports whether the surface has been tainted.
func (c *Canvas) Tainted() bool { return c.tainted }

// Clear makes every pixel transparent. The transform and clip are ignored.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// ClearRect makes the given device-space rectangle transparent.
func (c *Canvas) ClearRect(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

// Fill paints every pixel with col, ignoring transform, clip and alpha.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// AlphaAt returns the alpha of the pixel at (x, y). Pixels outside the
// surface read as 0.
func (c *Canvas) AlphaAt(x, y int) (uint8, error) {
	if c.tainted {
		return 0, fmt.Errorf("read pixel (%d,%d): %w", x, y, ErrTaintedSurface)
	}
	if !image.Pt(x, y).In(c.img.Rect) {
		return 0, nil
	}
	return c.img.RGBAAt(x, y).A, nil
}

// Clip intersects the clip region with p under the current transform. An
// empty path clips everything.
func (c *Canvas) Clip(p *Path) {
	c.ClipPath(p, IdentityMatrix())
}

// ClipPath intersects the clip region with p transformed by m and then by
// the current transform. The current transform is not changed.
func (c *Canvas) ClipPath(p *Path, m Matrix2D) {
	mask := c.rasterize(p, c.state.transform.Append(m))
	if prev := c.state.clip; prev != nil {
		for i, v := range mask.Pix {
			mask.Pix[i] = uint8(uint32(v) * uint32(prev.Pix[i]) / 0xff)
		}
	}
	c.state.clip = mask
}

// FillPath fills p with col under the current state.
func (c *Canvas) FillPath(p *Path, col color.Color) {
	if p.IsEmpty() || c.Width() == 0 || c.Height() == 0 {
		return
	}
	if col == nil {
		col = color.Black
	}
	if s := c.state.shadow; s != nil && s.Color != nil {
		m := c.state.transform
		m.Tx += s.OffsetX
		m.Ty += s.OffsetY
		c.composite(image.NewUniform(s.Color), c.modulate(c.rasterize(p, m)))
	}
	c.composite(image.NewUniform(col), c.modulate(c.rasterize(p, c.state.transform)))
}

// DrawImage draws the sr portion of img with sr.Min at the local origin.
func (c *Canvas) DrawImage(img image.Image, sr image.Rectangle) {
	if img == nil {
		return
	}
	sr = sr.Intersect(img.Bounds())
	if sr.Empty() || c.state.alpha == 0 {
		return
	}
	if sr.Min != (image.Point{}) {
		// Normalise to a zero origin; the integer-translate shortcut in
		// x/image/draw does not honour a non-zero source origin.
		tmp := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
		draw.Draw(tmp, tmp.Rect, img, sr.Min, draw.Src)
		img, sr = tmp, tmp.Rect
	}

	var opts draw.Options
	if c.state.clip != nil {
		opts.DstMask = c.state.clip
	}
	if c.state.alpha < 1 {
		opts.SrcMask = image.NewUniform(color.Alpha{A: alphaByte(c.state.alpha)})
	}

	var interp draw.Transformer = draw.NearestNeighbor
	if c.ImageSmoothing {
		interp = draw.ApproxBiLinear
	}
	aff := c.state.transform.Aff3()

	switch c.state.blend {
	case BlendCopy:
		interp.Transform(c.img, aff, img, sr, draw.Src, &opts)
	case BlendDestinationOut:
		tmp := image.NewRGBA(c.img.Rect)
		interp.Transform(tmp, aff, img, sr, draw.Over, &opts)
		mask := image.NewAlpha(c.img.Rect)
		for i := range mask.Pix {
			mask.Pix[i] = tmp.Pix[i*4+3]
		}
		c.erase(mask, 0xff)
	default:
		interp.Transform(c.img, aff, img, sr, draw.Over, &opts)
	}
}

// DrawCanvas draws src at the local origin. A tainted source taints c.
func (c *Canvas) DrawCanvas(src *Canvas) {
	if src.tainted {
		c.tainted = true
	}
	c.DrawImage(src.img, src.img.Rect)
}

// rasterize returns the coverage of p under m as a surface-sized mask.
func (c *Canvas) rasterize(p *Path, m Matrix2D) *image.Alpha {
	w, h := c.Width(), c.Height()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if p.IsEmpty() || w == 0 || h == 0 {
		return mask
	}
	if c.raster == nil {
		c.raster = vector.NewRasterizer(w, h)
	} else {
		c.raster.Reset(w, h)
	}
	for _, sp := range p.fillable() {
		x, y := m.TransformPoint(sp[0].X, sp[0].Y)
		c.raster.MoveTo(float32(x), float32(y))
		for _, pt := range sp[1:] {
			x, y = m.TransformPoint(pt.X, pt.Y)
			c.raster.LineTo(float32(x), float32(y))
		}
		c.raster.ClosePath()
	}
	c.raster.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	return mask
}

// modulate scales coverage by the global alpha and the clip region.
func (c *Canvas) modulate(mask *image.Alpha) *image.Alpha {
	clip := c.state.clip
	if c.state.alpha >= 1 && clip == nil {
		return mask
	}
	a := uint32(alphaByte(c.state.alpha))
	for i, v := range mask.Pix {
		if v == 0 {
			continue
		}
		m := uint32(v) * a / 0xff
		if clip != nil {
			m = m * uint32(clip.Pix[i]) / 0xff
		}
		mask.Pix[i] = uint8(m)
	}
	return mask
}

// composite blends a uniform source through mask using the current blend
// mode.
func (c *Canvas) composite(src *image.Uniform, mask *image.Alpha) {
	switch c.state.blend {
	case BlendCopy:
		draw.DrawMask(c.img, c.img.Rect, src, image.Point{}, mask, image.Point{}, draw.Src)
	case BlendDestinationOut:
		_, _, _, sa := src.C.RGBA()
		c.erase(mask, sa>>8)
	default:
		draw.DrawMask(c.img, c.img.Rect, src, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// erase removes destination coverage in proportion to mask × srcAlpha.
func (c *Canvas) erase(mask *image.Alpha, srcAlpha uint32) {
	for i, v := range mask.Pix {
		if v == 0 {
			continue
		}
		keep := 0xff - uint32(v)*srcAlpha/0xff
		px := c.img.Pix[i*4 : i*4+4 : i*4+4]
		for j := range px {
			px[j] = uint8(uint32(px[j]) * keep / 0xff)
		}
	}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Max(0, math.Min(1, a))*0xff + 0.5)
}
