package arbor

// SetBounds overrides the local bounds reported for n.
func (n *Node) SetBounds(x, y, w, h float64) {
	n.bounds = &Rectangle{x, y, w, h}
}

// ClearBounds removes a bounds override.
func (n *Node) ClearBounds() {
	n.bounds = nil
}

// GetBounds returns n's bounds in its own space. An explicit override wins,
// then the cache region, then the union of the Drawable's bounds and the
// transformed bounds of every visible child. The boolean is false when
// nothing reports bounds.
func (n *Node) GetBounds() (Rectangle, bool) {
	return n.boundsIn(nil, true)
}

// GetTransformedBounds returns n's bounds in its parent's space.
func (n *Node) GetTransformedBounds() (Rectangle, bool) {
	return n.boundsIn(nil, false)
}

// ownBounds returns the bounds that stand in for n's content.
func (n *Node) ownBounds() (Rectangle, bool) {
	if n.bounds != nil {
		return *n.bounds, true
	}
	if n.cache != nil {
		return n.cache.region(), true
	}
	return Rectangle{}, false
}

// boundsIn computes n's bounds under outer · local. ignoreTransform drops
// n's local matrix. outer is passed down so aggregation does not re-walk
// from the root for every child.
func (n *Node) boundsIn(outer *Matrix2D, ignoreTransform bool) (Rectangle, bool) {
	m := IdentityMatrix()
	if !ignoreTransform {
		m = n.LocalMatrix()
	}
	if outer != nil {
		m = m.Prepend(*outer)
	}

	if r, ok := n.ownBounds(); ok {
		return TransformBounds(r, m), true
	}

	var out Rectangle
	found := false
	if n.Drawable != nil {
		if r, ok := n.Drawable.Bounds(); ok {
			out, found = TransformBounds(r, m), true
		}
	}
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		r, ok := child.boundsIn(&m, false)
		if !ok {
			continue
		}
		if found {
			out = out.Union(r)
		} else {
			out, found = r, true
		}
	}
	return out, found
}
