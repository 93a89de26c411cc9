package arbor

// SetMask sets a mask node for this node. The mask's path clips this node
// and is interpreted in this node's parent space. The mask node is NOT part
// of the scene tree. A mask whose Drawable has no path clips everything.
func (n *Node) SetMask(maskNode *Node) {
	n.mask = maskNode
}

// ClearMask removes the mask from this node.
func (n *Node) ClearMask() {
	n.mask = nil
}

// Mask returns the current mask node, or nil if no mask is set.
func (n *Node) Mask() *Node {
	return n.mask
}

// maskPath returns the clipping geometry of a mask node, or nil.
func maskPath(mask *Node) *Path {
	if m, ok := mask.Drawable.(Masker); ok {
		return m.MaskPath()
	}
	return nil
}
