package arbor

// LocalMatrix returns the transform from n's local space to its parent's
// space: TransformMatrix when set, otherwise the composition of the
// transform fields.
func (n *Node) LocalMatrix() Matrix2D {
	if n.TransformMatrix != nil {
		return *n.TransformMatrix
	}
	return IdentityMatrix().AppendTransform(n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.SkewX, n.SkewY, n.RegX, n.RegY)
}

// ConcatenatedMatrix returns the transform from n's local space to the
// root's parent space, i.e. the root's local matrix appended with every
// descendant's down to n.
func (n *Node) ConcatenatedMatrix() Matrix2D {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = m.Prepend(p.LocalMatrix())
	}
	return m
}

// ConcatenatedDisplayProps returns the visual state n is drawn with:
// alpha multiplied along the ancestor chain, visibility ANDed, the nearest
// shadow and blend mode, and the concatenated matrix.
func (n *Node) ConcatenatedDisplayProps() DisplayProps {
	props := NewDisplayProps()
	for o := n; o != nil; o = o.Parent {
		props = props.Prepend(o.Visible, o.Alpha, o.Shadow, o.BlendMode, o.LocalMatrix())
	}
	return props
}

// LocalToGlobal converts a point in n's space to stage space.
func (n *Node) LocalToGlobal(x, y float64) (float64, float64) {
	return n.ConcatenatedMatrix().TransformPoint(x, y)
}

// GlobalToLocal converts a stage-space point to n's space. A node with a
// singular transform yields non-finite coordinates.
func (n *Node) GlobalToLocal(x, y float64) (float64, float64) {
	return n.ConcatenatedMatrix().Invert().TransformPoint(x, y)
}

// LocalToLocal converts a point in n's space to target's space.
func (n *Node) LocalToLocal(x, y float64, target *Node) (float64, float64) {
	gx, gy := n.LocalToGlobal(x, y)
	return target.GlobalToLocal(gx, gy)
}

// SetTransform sets every transform field at once.
func (n *Node) SetTransform(x, y, scaleX, scaleY, rotation, skewX, skewY, regX, regY float64) {
	n.X, n.Y = x, y
	n.ScaleX, n.ScaleY = scaleX, scaleY
	n.Rotation = rotation
	n.SkewX, n.SkewY = skewX, skewY
	n.RegX, n.RegY = regX, regY
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRegistration sets the node's RegX and RegY.
func (n *Node) SetRegistration(rx, ry float64) {
	n.RegX = rx
	n.RegY = ry
}

// IsVisible reports whether drawing n could produce pixels: it is visible,
// not fully transparent, not scaled to zero, and has cached, drawable or
// child content.
func (n *Node) IsVisible() bool {
	if !n.Visible || n.Alpha <= 0 || n.ScaleX == 0 || n.ScaleY == 0 {
		return false
	}
	return n.cache != nil || len(n.children) > 0 || (n.Drawable != nil && n.Drawable.IsVisible())
}
