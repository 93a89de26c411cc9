package arbor

import "time"

// DefaultMouseOverFrequency is the poll rate hosts usually pass to
// EnableMouseOver.
const DefaultMouseOverFrequency = 20

// maxMouseOverFrequency caps the poll rate.
const maxMouseOverFrequency = 50

// EnableMouseOver turns on pointerover/pointerout and rollover/rollout
// events for the mouse, re-testing the node under it frequency times per
// second. The poll is scheduled on the attached Ticker, or runs once per
// Update when there is none. A frequency of 0 or less turns polling off
// after one final forced check.
//
// The poll only re-tests when the mouse has moved since the previous check,
// so a tree that changes under a resting mouse is noticed on the next move
// or forced TestMouseOver.
func (s *Stage) EnableMouseOver(frequency int) {
	if s.overFrequency > 0 && frequency <= 0 {
		s.testMouseOver(true, nil, nil)
	}
	s.overFrequency = max(frequency, 0)
	s.scheduleMouseOver()
}

// MouseOverFrequency returns the poll rate, or 0 when polling is off.
func (s *Stage) MouseOverFrequency() int { return s.overFrequency }

// TestMouseOver runs the over/rollover check now. clear forces a re-test
// even if the mouse has not moved.
func (s *Stage) TestMouseOver(clear bool) {
	if s.prevStage != nil {
		return
	}
	s.testMouseOver(clear, nil, nil)
}

func (s *Stage) scheduleMouseOver() {
	if s.cancelOverPoll != nil {
		s.cancelOverPoll()
		s.cancelOverPoll = nil
	}
	s.pollOnUpdate = false
	if s.overFrequency <= 0 {
		return
	}
	if s.ticker == nil {
		s.pollOnUpdate = true
		return
	}
	interval := time.Second / time.Duration(min(s.overFrequency, maxMouseOverFrequency))
	s.cancelOverPoll = s.ticker.Every(interval, func() {
		if s.prevStage == nil {
			s.testMouseOver(false, nil, nil)
		}
	})
}

// testMouseOver diffs the chain of nodes under the mouse against the chain
// from the previous check. pointerout/pointerover go to the old and new
// leaf targets; rollout/rollover go to every node below the common
// ancestor of the two chains.
//
// owner is the stage earlier in the relay chain that already found a
// target. host is the stage that receives input from the host and shows
// the cursor.
func (s *Stage) testMouseOver(clear bool, owner, host *Stage) {
	next := s.nextStage
	if s.overFrequency <= 0 && !clear {
		if next != nil {
			next.testMouseOver(clear, owner, hostOf(host, s))
		}
		return
	}
	if !clear && s.mouseX == s.overX && s.mouseY == s.overY && s.mouseInBounds {
		return
	}

	o := s.pointerData(MousePointerID)
	var target *Node
	if owner == nil && (clear || s.mouseInBounds) {
		target = s.hitTarget(s.mouseX, s.mouseY)
		s.overX, s.overY = s.mouseX, s.mouseY
	}

	oldList := s.overChain
	var oldTarget *Node
	if len(oldList) > 0 {
		oldTarget = oldList[len(oldList)-1]
	}

	var list []*Node
	cursor := ""
	for t := target; t != nil; t = t.Parent {
		list = append(list, t)
		if cursor == "" && t.Cursor != "" {
			cursor = t.Cursor
		}
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}

	s.setCursor(cursor)
	if owner == nil && host != nil {
		host.setCursor(cursor)
	}

	common := -1
	for i := range list {
		if i >= len(oldList) || list[i] != oldList[i] {
			break
		}
		common = i
	}

	if oldTarget != target {
		s.dispatchPointerEvent(oldTarget, EventPointerOut, true, MousePointerID, o, target)
	}
	for i := len(oldList) - 1; i > common; i-- {
		s.dispatchPointerEvent(oldList[i], EventRollOut, false, MousePointerID, o, target)
	}
	for i := len(list) - 1; i > common; i-- {
		s.dispatchPointerEvent(list[i], EventRollOver, false, MousePointerID, o, oldTarget)
	}
	if oldTarget != target {
		s.dispatchPointerEvent(target, EventPointerOver, true, MousePointerID, o, oldTarget)
	}
	s.overChain = list

	if next != nil {
		next.testMouseOver(clear, claim(owner, target, s), hostOf(host, s))
	}
}

func hostOf(host, s *Stage) *Stage {
	if host != nil {
		return host
	}
	return s
}
