package arbor

import "slices"

// Listener is a registered event handler. Go funcs are not comparable, so the
// *Listener handle is what identifies a registration.
type Listener struct {
	fn   func(*Event)
	once bool
}

// NewListener wraps fn in a listener handle. Panics if fn is nil.
func NewListener(fn func(*Event)) *Listener {
	if fn == nil {
		panic("arbor: nil listener func")
	}
	return &Listener{fn: fn}
}

// Once marks l to be removed after its first invocation and returns l.
func (l *Listener) Once() *Listener {
	l.once = true
	return l
}

// ListenerOption configures On.
type ListenerOption func(*listenerOptions)

type listenerOptions struct {
	capture bool
	once    bool
}

// WithCapture registers the listener for the capture phase.
func WithCapture() ListenerOption {
	return func(o *listenerOptions) { o.capture = true }
}

// WithOnce removes the listener after its first invocation.
func WithOnce() ListenerOption {
	return func(o *listenerOptions) { o.once = true }
}

// EventTarget is anything events can be dispatched to.
type EventTarget interface {
	// Dispatcher returns the listener registry of the target.
	Dispatcher() *EventDispatcher
	// ParentTarget returns the next target toward the root, or nil.
	ParentTarget() EventTarget
}

// EventDispatcher holds bubble-phase and capture-phase listeners keyed by
// event type. The zero value is ready to use.
type EventDispatcher struct {
	listeners        map[string][]*Listener
	captureListeners map[string][]*Listener
}

// Dispatcher returns d, letting types that embed EventDispatcher satisfy
// EventTarget.
func (d *EventDispatcher) Dispatcher() *EventDispatcher { return d }

func (d *EventDispatcher) listenerMap(capture bool) map[string][]*Listener {
	if capture {
		return d.captureListeners
	}
	return d.listeners
}

// AddEventListener registers l for typ. Registering the same listener for
// the same type and phase again moves it to the end of the list instead of
// adding a duplicate. Returns l.
func (d *EventDispatcher) AddEventListener(typ string, l *Listener, useCapture bool) *Listener {
	if l == nil || l.fn == nil {
		panic("arbor: nil listener")
	}
	if useCapture {
		if d.captureListeners == nil {
			d.captureListeners = make(map[string][]*Listener)
		}
	} else if d.listeners == nil {
		d.listeners = make(map[string][]*Listener)
	}
	d.RemoveEventListener(typ, l, useCapture)
	m := d.listenerMap(useCapture)
	m[typ] = append(m[typ], l)
	return l
}

// On registers fn for typ and returns the listener handle needed to remove it.
func (d *EventDispatcher) On(typ string, fn func(*Event), opts ...ListenerOption) *Listener {
	var o listenerOptions
	for _, opt := range opts {
		opt(&o)
	}
	l := NewListener(fn)
	l.once = o.once
	return d.AddEventListener(typ, l, o.capture)
}

// RemoveEventListener unregisters l for typ in the given phase. Unknown
// listeners are ignored.
func (d *EventDispatcher) RemoveEventListener(typ string, l *Listener, useCapture bool) {
	m := d.listenerMap(useCapture)
	list := m[typ]
	i := slices.Index(list, l)
	if i < 0 {
		return
	}
	if len(list) == 1 {
		delete(m, typ)
		return
	}
	// Build a new slice so snapshots held by an in-progress dispatch stay intact.
	m[typ] = slices.Delete(slices.Clone(list), i, i+1)
}

// Off is an alias for RemoveEventListener.
func (d *EventDispatcher) Off(typ string, l *Listener, useCapture bool) {
	d.RemoveEventListener(typ, l, useCapture)
}

// RemoveAllEventListeners removes every listener for typ in both phases. An
// empty typ removes every listener of every type.
func (d *EventDispatcher) RemoveAllEventListeners(typ string) {
	if typ == "" {
		d.listeners = nil
		d.captureListeners = nil
		return
	}
	delete(d.listeners, typ)
	delete(d.captureListeners, typ)
}

// HasEventListener reports whether at least one listener is registered for
// typ in either phase.
func (d *EventDispatcher) HasEventListener(typ string) bool {
	return len(d.listeners[typ]) > 0 || len(d.captureListeners[typ]) > 0
}

// invoke runs the listeners of one node for one phase. At the target, capture
// listeners run before bubble listeners.
func (d *EventDispatcher) invoke(evt *Event, current EventTarget, phase EventPhase) {
	evt.CurrentTarget = current
	evt.Phase = phase
	if phase == PhaseAtTarget {
		d.invokeList(evt, true)
		if evt.ImmediatePropagationStopped {
			return
		}
		d.invokeList(evt, false)
		return
	}
	d.invokeList(evt, phase == PhaseCapture)
}

func (d *EventDispatcher) invokeList(evt *Event, capture bool) {
	list := d.listenerMap(capture)[evt.Type]
	if len(list) == 0 {
		return
	}
	snapshot := slices.Clone(list)
	for _, l := range snapshot {
		evt.current = l
		evt.currentCapture = capture
		evt.currentOwner = d
		evt.Removed = false
		l.fn(evt)
		if l.once && !evt.Removed {
			d.RemoveEventListener(evt.Type, l, capture)
		}
		if evt.ImmediatePropagationStopped {
			break
		}
	}
	evt.current = nil
	evt.currentOwner = nil
}

// DispatchEvent delivers evt to target. Bubbling events travel the full
// capture, at-target, bubble path along ParentTarget links; other events
// reach only the target. Returns false if the event was cancelable and a
// listener prevented its default.
func DispatchEvent(target EventTarget, evt *Event) bool {
	evt.resetPropagation()
	evt.Target = target

	parent := target.ParentTarget()
	if !evt.Bubbles || parent == nil {
		target.Dispatcher().invoke(evt, target, PhaseAtTarget)
		return !evt.DefaultPrevented
	}

	chain := []EventTarget{target}
	for p := parent; p != nil; p = p.ParentTarget() {
		chain = append(chain, p)
	}

	for i := len(chain) - 1; i >= 0 && !evt.PropagationStopped; i-- {
		phase := PhaseCapture
		if i == 0 {
			phase = PhaseAtTarget
		}
		chain[i].Dispatcher().invoke(evt, chain[i], phase)
	}
	for i := 1; i < len(chain) && !evt.PropagationStopped; i++ {
		chain[i].Dispatcher().invoke(evt, chain[i], PhaseBubble)
	}
	return !evt.DefaultPrevented
}

// Dispatch builds and delivers an event of type typ. When nothing could
// receive it, no event is allocated and true is returned.
func Dispatch(target EventTarget, typ string, bubbles, cancelable bool) bool {
	if !bubbles && !target.Dispatcher().HasEventListener(typ) {
		return true
	}
	return DispatchEvent(target, NewEvent(typ, bubbles, cancelable))
}

// WillTrigger reports whether target or any of its ancestors has a listener
// for typ.
func WillTrigger(target EventTarget, typ string) bool {
	for t := target; t != nil; t = t.ParentTarget() {
		if t.Dispatcher().HasEventListener(typ) {
			return true
		}
	}
	return false
}
