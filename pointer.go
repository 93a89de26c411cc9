package arbor

// MousePointerID is the pointer id of the mouse. Its state persists across
// presses; touch pointers use non-negative ids and are forgotten when they
// end.
const MousePointerID = -1

// PointerData is the tracked state of one pointer.
type PointerData struct {
	// X and Y are the last in-bounds position (clamped when
	// MouseMoveOutside is set).
	X, Y float64
	// RawX and RawY are the last reported position.
	RawX, RawY float64
	InBounds   bool
	Down       bool
	// DownTarget is the node hit when the pointer went down.
	DownTarget *Node
}

// PointerData returns a copy of the state of pointer id.
func (s *Stage) PointerData(id int) (PointerData, bool) {
	o, ok := s.pointers[id]
	if !ok {
		return PointerData{}, false
	}
	return *o, true
}

// PrimaryPointerID returns the id of the primary pointer. The boolean is
// false when no pointer is primary.
func (s *Stage) PrimaryPointerID() (int, bool) {
	return s.primaryID, s.hasPrimary
}

// MouseX returns the x position of the primary pointer.
func (s *Stage) MouseX() float64 { return s.mouseX }

// MouseY returns the y position of the primary pointer.
func (s *Stage) MouseY() float64 { return s.mouseY }

// MouseInBounds reports whether the primary pointer is over the canvas.
func (s *Stage) MouseInBounds() bool { return s.mouseInBounds }

// PointerDown reports that pointer id went down at (x, y) in canvas
// coordinates. Stages that are the next stage of another stage only receive
// input relayed from it and ignore direct calls.
func (s *Stage) PointerDown(id int, x, y float64) {
	if s.prevStage != nil {
		return
	}
	s.handlePointerDown(id, x, y, nil)
}

// PointerMove reports that pointer id moved to (x, y).
func (s *Stage) PointerMove(id int, x, y float64) {
	if s.prevStage != nil {
		return
	}
	s.handlePointerMove(id, x, y)
}

// PointerUp reports that pointer id was released. Touch pointers are
// forgotten afterwards; the mouse keeps its state.
func (s *Stage) PointerUp(id int) {
	if s.prevStage != nil {
		return
	}
	s.handlePointerUp(id, nil, id != MousePointerID)
}

// PointerCancel reports that pointer id was interrupted. It is handled as a
// release that always forgets the pointer.
func (s *Stage) PointerCancel(id int) {
	if s.prevStage != nil {
		return
	}
	s.handlePointerUp(id, nil, true)
}

// DoubleClick reports a double click of the mouse at its current position.
func (s *Stage) DoubleClick() {
	if s.prevStage != nil {
		return
	}
	s.handleDoubleClick(nil)
}

// owner is the stage earlier in the relay chain that already resolved a
// target for this interaction, or nil.
func (s *Stage) handlePointerDown(id int, x, y float64, owner *Stage) {
	if !s.hasPrimary || id == MousePointerID {
		s.primaryID = id
		s.hasPrimary = true
	}
	s.updatePointerPosition(id, x, y)

	o := s.pointerData(id)
	var target *Node
	if owner == nil {
		target = s.hitTarget(o.X, o.Y)
		o.DownTarget = target
	}

	if o.InBounds {
		s.dispatchPointerEvent(s.Node, EventStagePointerDown, false, id, o, nil)
		o.Down = true
	}
	s.dispatchPointerEvent(target, EventPointerDown, true, id, o, nil)

	if next := s.nextStage; next != nil {
		next.handlePointerDown(id, x, y, claim(owner, target, s))
	}
}

func (s *Stage) handlePointerMove(id int, x, y float64) {
	_, known := s.pointers[id]
	o := s.pointerData(id)
	wasInBounds := o.InBounds
	s.updatePointerPosition(id, x, y)

	if id == MousePointerID && o.InBounds != wasInBounds {
		if wasInBounds {
			s.dispatchPointerEvent(s.Node, EventPointerLeave, false, id, o, nil)
		} else {
			s.dispatchPointerEvent(s.Node, EventPointerEnter, false, id, o, nil)
		}
	}
	s.dispatchPointerEvent(s.Node, EventStagePointerMove, false, id, o, nil)
	s.dispatchPointerEvent(o.DownTarget, EventDrag, true, id, o, nil)

	// A touch that moves without going down has no state worth keeping.
	if !known && id != MousePointerID {
		delete(s.pointers, id)
	}

	if next := s.nextStage; next != nil {
		next.handlePointerMove(id, x, y)
	}
}

func (s *Stage) handlePointerUp(id int, owner *Stage, forget bool) {
	o := s.pointerData(id)
	downTarget := o.DownTarget

	var target *Node
	if owner == nil && (downTarget != nil || s.nextStage != nil) {
		target = s.hitTarget(o.X, o.Y)
	}

	if o.Down {
		s.dispatchPointerEvent(s.Node, EventStagePointerUp, false, id, o, nil)
		o.Down = false
	}
	if target == downTarget {
		s.dispatchPointerEvent(downTarget, EventClick, true, id, o, nil)
	}
	s.dispatchPointerEvent(downTarget, EventPointerUp, true, id, o, nil)

	if forget {
		if s.hasPrimary && id == s.primaryID {
			s.hasPrimary = false
		}
		delete(s.pointers, id)
	} else {
		o.DownTarget = nil
	}

	if next := s.nextStage; next != nil {
		next.handlePointerUp(id, claim(owner, target, s), forget)
	}
}

func (s *Stage) handleDoubleClick(owner *Stage) {
	o := s.pointerData(MousePointerID)
	var target *Node
	if owner == nil {
		target = s.hitTarget(s.mouseX, s.mouseY)
		s.dispatchPointerEvent(target, EventDoubleClick, true, MousePointerID, o, nil)
	}
	if next := s.nextStage; next != nil {
		next.handleDoubleClick(claim(owner, target, s))
	}
}

// claim returns the owner to pass down the relay chain: the existing owner,
// else s if it found a target.
func claim(owner *Stage, target *Node, s *Stage) *Stage {
	if owner != nil {
		return owner
	}
	if target != nil {
		return s
	}
	return nil
}

func (s *Stage) pointerData(id int) *PointerData {
	o, ok := s.pointers[id]
	if !ok {
		o = &PointerData{}
		s.pointers[id] = o
	}
	return o
}

// updatePointerPosition records a raw position for pointer id and works out
// whether it is over the canvas.
func (s *Stage) updatePointerPosition(id int, x, y float64) {
	var w, h float64
	if s.canvas != nil {
		w, h = float64(s.canvas.Width()), float64(s.canvas.Height())
	}
	o := s.pointerData(id)
	inBounds := x >= 0 && y >= 0 && x <= w-1 && y <= h-1
	switch {
	case inBounds:
		o.X, o.Y = x, y
	case s.MouseMoveOutside:
		o.X = max(0, min(x, w-1))
		o.Y = max(0, min(y, h-1))
	}
	o.RawX, o.RawY = x, y
	o.InBounds = inBounds

	if id == MousePointerID || (s.hasPrimary && id == s.primaryID) {
		s.mouseX, s.mouseY = o.X, o.Y
		s.mouseInBounds = inBounds
	}
}

// hitTarget returns the topmost interactive node under the stage-space
// point (x, y).
func (s *Stage) hitTarget(x, y float64) *Node {
	probe := newHitProbe(s.StrictHitTest)
	target := s.Node.collectUnderPoint(x, y, nil, true, false, 0, probe)
	if s.StrictHitTest && probe.err != nil {
		s.lastErr = probe.err
		return nil
	}
	return target
}

// dispatchPointerEvent delivers a pointer event to target. Non-bubbling
// events are only built when target listens for them.
func (s *Stage) dispatchPointerEvent(target *Node, typ string, bubbles bool, id int, o *PointerData, related *Node) {
	if target == nil || (!bubbles && !target.HasEventListener(typ)) {
		s.emitInteractionEvent(typ, target, id, o)
		return
	}
	evt := NewEvent(typ, bubbles, false)
	evt.StageX, evt.StageY = o.X, o.Y
	evt.RawX, evt.RawY = o.RawX, o.RawY
	evt.PointerID = id
	evt.Primary = s.isPrimary(id)
	evt.RelatedTarget = related
	target.DispatchEvent(evt)
	s.emitInteractionEvent(typ, target, id, o)
}

func (s *Stage) isPrimary(id int) bool {
	return id == MousePointerID || (s.hasPrimary && id == s.primaryID)
}

// --- ECS bridge ---

func (s *Stage) emitInteractionEvent(typ string, node *Node, id int, o *PointerData) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	lx, ly := node.GlobalToLocal(o.X, o.Y)
	s.store.EmitEvent(InteractionEvent{
		Type:      typ,
		EntityID:  node.EntityID,
		GlobalX:   o.X,
		GlobalY:   o.Y,
		LocalX:    lx,
		LocalY:    ly,
		PointerID: id,
		Primary:   s.isPrimary(id),
	})
}
