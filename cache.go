package arbor

import (
	"fmt"
	"math"
)

// cacheIDCounter issues cache ids; it only ever grows.
var cacheIDCounter uint64

// nodeCache is a node's pre-rendered image of a region of its local space.
type nodeCache struct {
	canvas        *Canvas
	x, y          float64
	width, height float64
	scale         float64
	id            uint64
}

func (c *nodeCache) region() Rectangle {
	return Rectangle{c.x, c.y, c.width, c.height}
}

// blit draws the cached pixels back at their local-space region.
func (c *nodeCache) blit(target *Canvas) {
	target.Save()
	target.Transform(NewMatrix(1/c.scale, 0, 0, 1/c.scale, c.x, c.y))
	target.DrawCanvas(c.canvas)
	target.Restore()
}

// Cache renders the region (x, y, w, h) of n's local space into an owned
// buffer at the given scale. Later draws and hit tests use the buffer until
// UpdateCache or Uncache is called; changes to n or its children are not
// picked up automatically.
func (n *Node) Cache(x, y, w, h, scale float64) error {
	if w <= 0 || h <= 0 || scale <= 0 {
		return fmt.Errorf("cache %q (%g,%g %gx%g @%g): %w", n.Name, x, y, w, h, scale, ErrInvalidCacheSize)
	}
	prev := n.cache
	n.cache = &nodeCache{x: x, y: y, width: w, height: h, scale: scale}
	if prev != nil {
		n.cache.canvas = prev.canvas
	}
	return n.UpdateCache()
}

// UpdateCache re-renders the cache and issues it a new CacheID.
func (n *Node) UpdateCache() error {
	c := n.cache
	if c == nil {
		return fmt.Errorf("update cache %q: %w", n.Name, ErrNotCached)
	}
	pw := int(math.Ceil(c.width * c.scale))
	ph := int(math.Ceil(c.height * c.scale))
	if c.canvas == nil {
		c.canvas = NewCanvas(pw, ph)
	} else {
		c.canvas.Resize(pw, ph)
	}
	c.canvas.SetTransform(NewMatrix(c.scale, 0, 0, c.scale, -c.x*c.scale, -c.y*c.scale))
	n.Draw(c.canvas, true)
	c.canvas.SetTransform(IdentityMatrix())

	cacheIDCounter++
	c.id = cacheIDCounter
	return nil
}

// Uncache discards the cache.
func (n *Node) Uncache() {
	n.cache = nil
}

// CacheID returns the id of the current cache image, or 0 when uncached.
// The id changes every time the cache is rendered.
func (n *Node) CacheID() uint64 {
	if n.cache == nil {
		return 0
	}
	return n.cache.id
}

// CacheCanvas returns the cache surface, or nil when uncached.
func (n *Node) CacheCanvas() *Canvas {
	if n.cache == nil {
		return nil
	}
	return n.cache.canvas
}
