package arbor

import (
	"slices"
	"time"
)

// TickProps is the timing information handed down the tick walk.
type TickProps struct {
	// Delta is the time since the previous tick.
	Delta time.Duration
	// Time is the running time of the tick source.
	Time time.Duration
	// Paused reports whether the tick source is paused.
	Paused bool
}

// newTickEvent builds a tick-family event carrying props.
func newTickEvent(typ string, cancelable bool, props TickProps) *Event {
	evt := NewEvent(typ, false, cancelable)
	evt.Delta = props.Delta
	evt.Time = props.Time
	evt.Paused = props.Paused
	return evt
}

// tick advances n's subtree. Children go first, in reverse order, from a
// snapshot; then n's Drawable if it is Tickable; then n's tick listeners.
func (n *Node) tick(props TickProps) {
	if n.TickChildren && len(n.children) > 0 {
		list := slices.Clone(n.children)
		for i := len(list) - 1; i >= 0; i-- {
			if child := list[i]; child.TickEnabled {
				child.tick(props)
			}
		}
	}
	if t, ok := n.Drawable.(Tickable); ok {
		t.Tick(props)
	}
	if n.HasEventListener(EventTick) {
		n.DispatchEvent(newTickEvent(EventTick, false, props))
	}
}
