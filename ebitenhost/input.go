package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

const (
	// doubleClickInterval is the longest gap between two releases that still
	// counts as a double click.
	doubleClickInterval = 500 * time.Millisecond
	// doubleClickSlop is how far in pixels the mouse may drift between the two
	// clicks.
	doubleClickSlop = 4
)

type touchPoint struct {
	id   int
	x, y int
}

// frameInput is the raw input state for one tick.
type frameInput struct {
	now            time.Time
	mouseX, mouseY int
	mousePressed   bool
	mouseReleased  bool

	touchesPressed  []touchPoint
	touchesHeld     []touchPoint
	touchesReleased []int
}

func readFrameInput() frameInput {
	mx, my := ebiten.CursorPosition()
	in := frameInput{
		now:           time.Now(),
		mouseX:        mx,
		mouseY:        my,
		mousePressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		mouseReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		in.touchesPressed = append(in.touchesPressed, touchPoint{int(id), x, y})
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		in.touchesHeld = append(in.touchesHeld, touchPoint{int(id), x, y})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		in.touchesReleased = append(in.touchesReleased, int(id))
	}
	return in
}

// inputState turns per-tick input snapshots into stage pointer calls.
type inputState struct {
	mouseX, mouseY int
	mouseSeen      bool

	lastRelease  time.Time
	lastReleaseX int
	lastReleaseY int

	touches map[int][2]int
}

func newInputState() inputState {
	return inputState{touches: make(map[int][2]int)}
}

func (s *inputState) apply(stage *arbor.Stage, in frameInput) {
	if !s.mouseSeen || in.mouseX != s.mouseX || in.mouseY != s.mouseY {
		s.mouseX, s.mouseY, s.mouseSeen = in.mouseX, in.mouseY, true
		stage.PointerMove(arbor.MousePointerID, float64(in.mouseX), float64(in.mouseY))
	}
	if in.mousePressed {
		stage.PointerDown(arbor.MousePointerID, float64(in.mouseX), float64(in.mouseY))
	}
	if in.mouseReleased {
		stage.PointerUp(arbor.MousePointerID)
		if s.isDoubleClick(in) {
			stage.DoubleClick()
			s.lastRelease = time.Time{}
		} else {
			s.lastRelease = in.now
			s.lastReleaseX, s.lastReleaseY = in.mouseX, in.mouseY
		}
	}

	for _, t := range in.touchesPressed {
		s.touches[t.id] = [2]int{t.x, t.y}
		stage.PointerDown(t.id, float64(t.x), float64(t.y))
	}
	for _, t := range in.touchesHeld {
		if prev, ok := s.touches[t.id]; ok && prev == [2]int{t.x, t.y} {
			continue
		}
		s.touches[t.id] = [2]int{t.x, t.y}
		stage.PointerMove(t.id, float64(t.x), float64(t.y))
	}
	for _, id := range in.touchesReleased {
		delete(s.touches, id)
		stage.PointerUp(id)
	}
}

func (s *inputState) isDoubleClick(in frameInput) bool {
	if s.lastRelease.IsZero() || in.now.Sub(s.lastRelease) > doubleClickInterval {
		return false
	}
	dx := math.Abs(float64(in.mouseX - s.lastReleaseX))
	dy := math.Abs(float64(in.mouseY - s.lastReleaseY))
	return dx <= doubleClickSlop && dy <= doubleClickSlop
}
