package arbor

import "slices"

// Draw renders n's content and children into c at c's current transform.
// n's own transform, alpha and mask are not applied; the parent applies them
// before calling Draw. A cached node blits its cache unless ignoreCache is
// set.
func (n *Node) Draw(c *Canvas, ignoreCache bool) bool {
	if !ignoreCache && n.cache != nil && n.cache.canvas != nil {
		n.cache.blit(c)
		return true
	}
	if n.Drawable != nil && n.Drawable.IsVisible() {
		n.Drawable.Draw(c, ignoreCache)
	}
	if len(n.children) == 0 {
		return true
	}
	list := slices.Clone(n.children)
	for _, child := range list {
		if !child.IsVisible() {
			continue
		}
		c.Save()
		child.updateContext(c)
		child.Draw(c, false)
		c.Restore()
	}
	return true
}

// updateContext applies n's mask, transform, alpha, blend mode and shadow to
// c. c's transform must be the parent's concatenated transform.
func (n *Node) updateContext(c *Canvas) {
	if n.mask != nil {
		c.ClipPath(maskPath(n.mask), n.mask.LocalMatrix())
	}
	c.Transform(n.LocalMatrix())
	c.SetGlobalAlpha(c.GlobalAlpha() * n.Alpha)
	c.SetBlendMode(n.BlendMode)
	if n.Shadow != nil {
		c.SetShadow(n.Shadow)
	}
}
