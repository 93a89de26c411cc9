package arbor

import (
	"fmt"
	"slices"
)

// Drawable is the content a Node renders. Implementations draw in the
// node's local space; the surface transform is already set up.
type Drawable interface {
	// IsVisible reports whether Draw would produce any pixels.
	IsVisible() bool
	// Draw renders into c and reports whether anything was handled.
	Draw(c *Canvas, ignoreCache bool) bool
	// Bounds returns the local-space bounds. The boolean is false when the
	// content cannot report bounds.
	Bounds() (Rectangle, bool)
}

// Tickable is implemented by Drawables that advance with the tick walk.
type Tickable interface {
	Tick(props TickProps)
}

// Masker is implemented by Drawables whose geometry can act as a mask.
type Masker interface {
	MaskPath() *Path
}

// DrawableCloner is implemented by Drawables that can copy themselves for
// Node.Clone. Drawables without it are shared between clones.
type DrawableCloner interface {
	CloneDrawable() Drawable
}

// nodeIDCounter is a plain counter; arbor is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Containers, leaves and the stage root all
// use this one struct; a node with a nil Drawable is a pure container.
type Node struct {
	EventDispatcher

	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation and skew are in degrees; the registration
	// point is the local origin of rotation and scale.
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	SkewX, SkewY   float64
	RegX, RegY     float64

	// TransformMatrix overrides the transform fields when non-nil.
	TransformMatrix *Matrix2D

	// Visual
	Alpha     float64
	Visible   bool
	Shadow    *Shadow
	BlendMode BlendMode
	mask      *Node

	// HitArea replaces this node's content during hit tests. It is not part
	// of the tree; its transform is relative to this node.
	HitArea *Node

	// Cursor is the pointer cursor shown while this node or a descendant is
	// under the mouse. Empty inherits.
	Cursor string

	// Interaction
	MouseEnabled  bool
	MouseChildren bool
	TickEnabled   bool
	TickChildren  bool

	// Content
	Drawable Drawable

	bounds *Rectangle
	cache  *nodeCache

	// Metadata
	UserData any
	EntityID uint32

	stage    *Stage
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
	n.MouseEnabled = true
	n.MouseChildren = true
	n.TickEnabled = true
	n.TickChildren = true
}

// NewNode creates a node that renders d. d may be nil.
func NewNode(name string, d Drawable) *Node {
	n := &Node{Name: name, Drawable: d}
	nodeDefaults(n)
	return n
}

// NewContainer creates a node with no content of its own.
func NewContainer(name string) *Node {
	return NewNode(name, nil)
}

// ParentTarget returns the parent node as an EventTarget.
func (n *Node) ParentTarget() EventTarget {
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

// DispatchEvent delivers evt with n as the target.
func (n *Node) DispatchEvent(evt *Event) bool {
	return DispatchEvent(n, evt)
}

// Dispatch builds and delivers an event of type typ with n as the target.
func (n *Node) Dispatch(typ string, bubbles, cancelable bool) bool {
	return Dispatch(n, typ, bubbles, cancelable)
}

// WillTrigger reports whether n or an ancestor listens for typ.
func (n *Node) WillTrigger(typ string) bool {
	return WillTrigger(n, typ)
}

// Stage returns the stage at the root of n's tree, or nil.
func (n *Node) Stage() *Stage {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r.stage
}

// --- Tree manipulation ---

// AddChild appends children in order. Each child is removed from its current
// parent first. nil children are ignored. Panics if a child is n or one of
// its ancestors.
func (n *Node) AddChild(children ...*Node) {
	for _, child := range children {
		n.AddChildAt(child, len(n.children))
	}
}

// AddChildAt inserts child at index. Out-of-range indices are clamped.
// A child that already has a parent is removed first and index then applies
// to the shortened list, so moving a child within the same parent to index i
// leaves it at i.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		return
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("arbor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	index = max(0, min(index, len(n.children)))
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	child.Dispatch(EventAdded, false, false)
}

// RemoveChild detaches child from n. Returns false if child is not a child
// of n.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.Parent != n {
		return false
	}
	return n.RemoveChildAt(slices.Index(n.children, child)) != nil
}

// RemoveChildAt removes and returns the child at index, or nil if index is
// out of range.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	child := n.children[index]
	n.children = slices.Delete(n.children, index, index+1)
	child.Parent = nil
	child.Dispatch(EventRemoved, false, false)
	return child
}

// RemoveAllChildren detaches every child, last first.
func (n *Node) RemoveAllChildren() {
	for len(n.children) > 0 {
		n.RemoveChildAt(len(n.children) - 1)
	}
}

// RemoveFromParent detaches n from its parent. No-op without a parent.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index, or nil if out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// ChildByName returns the first child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildIndex returns the index of child, or -1.
func (n *Node) ChildIndex(child *Node) int {
	return slices.Index(n.children, child)
}

// SetChildIndex moves child to index among its siblings. Out-of-range
// indices are clamped; non-children are ignored.
func (n *Node) SetChildIndex(child *Node, index int) {
	old := slices.Index(n.children, child)
	if old < 0 {
		return
	}
	index = max(0, min(index, len(n.children)-1))
	if old == index {
		return
	}
	n.children = slices.Delete(n.children, old, old+1)
	n.children = slices.Insert(n.children, index, child)
}

// SwapChildren exchanges the positions of two children.
func (n *Node) SwapChildren(a, b *Node) {
	i, j := slices.Index(n.children, a), slices.Index(n.children, b)
	if i < 0 || j < 0 {
		return
	}
	n.children[i], n.children[j] = b, a
}

// SwapChildrenAt exchanges the children at two indices.
func (n *Node) SwapChildrenAt(i, j int) {
	if i < 0 || j < 0 || i >= len(n.children) || j >= len(n.children) {
		return
	}
	n.children[i], n.children[j] = n.children[j], n.children[i]
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// SortChildren stably reorders the children with cmp.
func (n *Node) SortChildren(cmp func(a, b *Node) int) {
	slices.SortStableFunc(n.children, cmp)
}

// --- Cloning ---

// Clone returns a copy of n without a parent, listeners or cache. Drawables
// implementing DrawableCloner are copied; others are shared. With recursive
// set, children are cloned too.
func (n *Node) Clone(recursive bool) *Node {
	c := &Node{}
	*c = *n
	c.EventDispatcher = EventDispatcher{}
	c.ID = nextNodeID()
	c.Parent = nil
	c.children = nil
	c.cache = nil
	c.stage = nil
	if n.TransformMatrix != nil {
		m := *n.TransformMatrix
		c.TransformMatrix = &m
	}
	if n.bounds != nil {
		b := *n.bounds
		c.bounds = &b
	}
	if dc, ok := n.Drawable.(DrawableCloner); ok {
		c.Drawable = dc.CloneDrawable()
	}
	if recursive {
		for _, child := range n.children {
			cc := child.Clone(true)
			cc.Parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

// --- Disposal ---

// Dispose removes n from its parent, marks it disposed, and recursively
// disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitArea = nil
	n.mask = nil
	n.cache = nil
	n.Drawable = nil
	n.UserData = nil
	n.RemoveAllEventListeners("")
}

// IsDisposed returns true if n has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%q id=%d)", n.Name, n.ID)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// hasPointerListener reports whether n listens for any pointer event or
// shows a cursor.
func (n *Node) hasPointerListener() bool {
	if n.Cursor != "" {
		return true
	}
	for _, typ := range pointerEventTypes {
		if n.HasEventListener(typ) {
			return true
		}
	}
	return false
}
