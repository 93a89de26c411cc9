package arbor

import (
	"fmt"
	"time"
)

// Event types dispatched by arbor.
const (
	EventAdded   = "added"
	EventRemoved = "removed"

	EventPointerDown = "pointerdown"
	EventPointerUp   = "pointerup"
	EventClick       = "click"
	EventDoubleClick = "dblclick"
	EventDrag        = "drag"
	EventPointerOver = "pointerover"
	EventPointerOut  = "pointerout"
	EventRollOver    = "rollover"
	EventRollOut     = "rollout"

	EventStagePointerDown = "stagepointerdown"
	EventStagePointerMove = "stagepointermove"
	EventStagePointerUp   = "stagepointerup"
	EventPointerEnter     = "pointerenter"
	EventPointerLeave     = "pointerleave"
	EventCursorChange     = "cursorchange"

	EventTickStart = "tickstart"
	EventTick      = "tick"
	EventTickEnd   = "tickend"
	EventDrawStart = "drawstart"
	EventDrawEnd   = "drawend"
)

// pointerEventTypes lists the events that make a node interesting to the
// pointer engine when pruning hit tests by listener.
var pointerEventTypes = [...]string{
	EventClick, EventDoubleClick, EventPointerDown, EventPointerOut,
	EventPointerOver, EventDrag, EventPointerUp, EventRollOut, EventRollOver,
}

// EventPhase identifies where along the propagation path an event is.
type EventPhase uint8

const (
	PhaseNone EventPhase = iota
	PhaseCapture
	PhaseAtTarget
	PhaseBubble
)

func (p EventPhase) String() string {
	switch p {
	case PhaseCapture:
		return "capture"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubble:
		return "bubble"
	}
	return "none"
}

// Event is delivered to listeners. A fresh Event is built for each dispatch;
// listeners may keep a reference after returning.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool

	Target        EventTarget
	CurrentTarget EventTarget
	Phase         EventPhase

	DefaultPrevented            bool
	PropagationStopped          bool
	ImmediatePropagationStopped bool
	Removed                     bool

	Timestamp time.Time

	// Pointer payload, in stage coordinates.
	StageX, StageY float64
	RawX, RawY     float64
	PointerID      int
	Primary        bool
	RelatedTarget  *Node

	// Tick payload.
	Delta  time.Duration
	Time   time.Duration
	Paused bool

	current        *Listener
	currentCapture bool
	currentOwner   *EventDispatcher
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, bubbles, cancelable bool) *Event {
	return &Event{Type: typ, Bubbles: bubbles, Cancelable: cancelable, Timestamp: time.Now()}
}

// PreventDefault marks the event as handled. It has no effect on events that
// are not cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.DefaultPrevented = true
	}
}

// StopPropagation stops delivery to further nodes on the propagation path.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.PropagationStopped = true
}

// StopImmediatePropagation stops delivery to every remaining listener.
func (e *Event) StopImmediatePropagation() {
	e.ImmediatePropagationStopped = true
	e.PropagationStopped = true
}

// Remove unregisters the listener that is currently handling the event. The
// removal affects later dispatches only; listeners already scheduled for this
// pass still run.
func (e *Event) Remove() {
	e.Removed = true
	if e.current != nil && e.currentOwner != nil {
		e.currentOwner.RemoveEventListener(e.Type, e.current, e.currentCapture)
	}
}

// TargetNode returns the target as a *Node, or nil if it is not a node.
func (e *Event) TargetNode() *Node {
	n, _ := e.Target.(*Node)
	return n
}

// CurrentNode returns the current target as a *Node, or nil.
func (e *Event) CurrentNode() *Node {
	n, _ := e.CurrentTarget.(*Node)
	return n
}

// Local returns the pointer position in the current target's coordinate
// space. For non-node targets the stage position is returned.
func (e *Event) Local() (x, y float64) {
	if n := e.CurrentNode(); n != nil {
		return n.GlobalToLocal(e.StageX, e.StageY)
	}
	return e.StageX, e.StageY
}

func (e *Event) String() string {
	return fmt.Sprintf("Event(type=%s phase=%s)", e.Type, e.Phase)
}

// resetPropagation clears the per-pass flags so an event value can be handed
// to a new dispatch.
func (e *Event) resetPropagation() {
	e.PropagationStopped = false
	e.ImmediatePropagationStopped = false
	e.Removed = false
	e.Phase = PhaseNone
	e.Target = nil
	e.CurrentTarget = nil
}
