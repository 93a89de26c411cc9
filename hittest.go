package arbor

import "image/color"

// HitMode selects which nodes a hit test considers.
type HitMode int

const (
	// HitAll ignores interaction flags.
	HitAll HitMode = iota
	// HitMouseEnabled skips nodes with MouseEnabled unset and reports the
	// container itself for containers with MouseChildren unset.
	HitMouseEnabled
	// HitMouseListeners behaves like HitMouseEnabled and also skips leaves
	// that neither listen for pointer events nor sit under an ancestor that
	// does.
	HitMouseListeners
)

// hitProbe is the 1×1 scratch surface used for render-probe hit tests. The
// query point is mapped to its single pixel and each candidate is drawn in
// turn; a pixel with alpha above 1 is a hit.
type hitProbe struct {
	canvas *Canvas
	strict bool
	err    error
}

func newHitProbe(strict bool) *hitProbe {
	return &hitProbe{canvas: NewCanvas(1, 1), strict: strict}
}

// aborted reports whether a strict probe has failed and traversal must stop.
func (p *hitProbe) aborted() bool {
	return p.strict && p.err != nil
}

// begin clears the probe and positions (x, y) of the space described by m
// on the probe pixel.
func (p *hitProbe) begin(m Matrix2D, x, y float64, alpha float64) {
	p.canvas.Clear()
	m.Tx -= x
	m.Ty -= y
	p.canvas.SetTransform(m)
	p.canvas.SetGlobalAlpha(alpha)
	p.canvas.SetBlendMode(BlendSourceOver)
	p.canvas.SetShadow(nil)
}

// hit reads back the probe pixel. Read failures count as a miss; the first
// failure is kept for strict callers and logged otherwise.
func (p *hitProbe) hit() bool {
	a, err := p.canvas.AlphaAt(0, 0)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		if !p.strict {
			Logger().Warn("arbor: hit test probe unreadable", "err", err)
		}
		// A tainted surface stays tainted; start over with a clean one.
		p.canvas = NewCanvas(1, 1)
		return false
	}
	return a > 1
}

// testMask reports whether (x, y) in stage space lies inside target's mask.
func (p *hitProbe) testMask(target *Node, x, y float64) bool {
	if target.mask == nil {
		return true
	}
	m := IdentityMatrix()
	if target.Parent != nil {
		m = target.Parent.ConcatenatedMatrix()
	}
	m = m.Append(target.mask.LocalMatrix())
	p.begin(m, x, y, 1)
	p.canvas.FillPath(maskPath(target.mask), color.Black)
	return p.hit()
}

// GetObjectsUnderPoint returns every descendant of n whose content covers
// (x, y) in n's local space, topmost first. Probe read failures are logged
// and treated as misses.
func (n *Node) GetObjectsUnderPoint(x, y float64, mode HitMode) []*Node {
	out, _ := n.objectsUnderPoint(x, y, mode, false)
	return out
}

// GetObjectsUnderPointErr is GetObjectsUnderPoint with probe read failures
// returned as errors.
func (n *Node) GetObjectsUnderPointErr(x, y float64, mode HitMode) ([]*Node, error) {
	return n.objectsUnderPoint(x, y, mode, true)
}

func (n *Node) objectsUnderPoint(x, y float64, mode HitMode, strict bool) ([]*Node, error) {
	gx, gy := n.LocalToGlobal(x, y)
	probe := newHitProbe(strict)
	var out []*Node
	n.collectUnderPoint(gx, gy, &out, mode > HitAll, mode == HitMouseEnabled, 0, probe)
	if strict && probe.err != nil {
		return nil, probe.err
	}
	return out, nil
}

// GetObjectUnderPoint returns the topmost descendant of n covering (x, y) in
// n's local space, or nil.
func (n *Node) GetObjectUnderPoint(x, y float64, mode HitMode) *Node {
	gx, gy := n.LocalToGlobal(x, y)
	return n.collectUnderPoint(gx, gy, nil, mode > HitAll, mode == HitMouseEnabled, 0, newHitProbe(false))
}

// HitTest reports whether n's content covers (x, y) in n's local space. n's
// HitArea is used instead of its content when set. Visibility, masks and
// alpha are not considered.
func (n *Node) HitTest(x, y float64) bool {
	probe := newHitProbe(false)
	probe.begin(IdentityMatrix(), x, y, 1)
	if n.HitArea != nil {
		probe.canvas.Transform(n.HitArea.LocalMatrix())
		n.HitArea.Draw(probe.canvas, false)
	} else {
		n.Draw(probe.canvas, false)
	}
	return probe.hit()
}

// collectUnderPoint walks n's children topmost first looking for content
// under the stage-space point (x, y). With arr nil it returns the first hit;
// otherwise it appends every hit to *arr and returns nil.
//
// mouse enables interaction pruning. activeListener reports whether an
// ancestor already listens for pointer events; when it is false in mouse
// mode, leaves without listeners are skipped without probing.
func (n *Node) collectUnderPoint(x, y float64, arr *[]*Node, mouse, activeListener bool, depth int, probe *hitProbe) *Node {
	if depth == 0 && !probe.testMask(n, x, y) {
		return nil
	}
	activeListener = activeListener || (mouse && n.hasPointerListener())

	for i := len(n.children) - 1; i >= 0; i-- {
		if probe.aborted() {
			return nil
		}
		if i >= len(n.children) {
			continue
		}
		child := n.children[i]
		hitArea := child.HitArea
		if !child.Visible || (hitArea == nil && !child.IsVisible()) || (mouse && !child.MouseEnabled) {
			continue
		}
		if hitArea == nil && !probe.testMask(child, x, y) {
			continue
		}

		if hitArea == nil && len(child.children) > 0 {
			result := child.collectUnderPoint(x, y, arr, mouse, activeListener, depth+1, probe)
			if arr == nil && result != nil {
				if mouse && !n.MouseChildren {
					return n
				}
				return result
			}
			if child.Drawable == nil {
				continue
			}
		}

		if mouse && !activeListener && !child.hasPointerListener() {
			continue
		}

		props := child.ConcatenatedDisplayProps()
		m, alpha := props.Matrix, props.Alpha
		if hitArea != nil {
			m = m.Append(hitArea.LocalMatrix())
			alpha = hitArea.Alpha
		}
		probe.begin(m, x, y, alpha)
		switch {
		case hitArea != nil:
			hitArea.Draw(probe.canvas, false)
		case len(child.children) > 0:
			// Children were probed above; only the node's own content remains.
			child.Drawable.Draw(probe.canvas, false)
		default:
			child.Draw(probe.canvas, false)
		}
		if !probe.hit() {
			continue
		}

		if arr != nil {
			*arr = append(*arr, child)
			continue
		}
		if mouse && !n.MouseChildren {
			return n
		}
		return child
	}
	return nil
}
