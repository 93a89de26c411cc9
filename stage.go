package arbor

import (
	"image"
	"time"
)

// EntityStore receives pointer events for nodes with a non-zero EntityID.
// See the ecs submodule for a Donburi-backed implementation.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries pointer event data for the ECS bridge.
type InteractionEvent struct {
	Type      string
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	PointerID int
	Primary   bool
}

// StageConfig holds the settings applied by NewStage.
type StageConfig struct {
	// AutoClear clears the canvas before each draw.
	AutoClear bool
	// MouseMoveOutside keeps reporting pointer moves outside the canvas,
	// with positions clamped to its edges.
	MouseMoveOutside bool
	// TickOnUpdate runs a tick walk at the start of every Update.
	TickOnUpdate bool
	// StrictHitTest surfaces probe read failures instead of treating them
	// as misses. See Stage.LastError.
	StrictHitTest bool
	// MouseOverFrequency enables over/out and rollover/rollout polling at
	// this many checks per second (capped at 50). 0 disables it.
	MouseOverFrequency int
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// DefaultStageConfig returns the settings most hosts want.
func DefaultStageConfig() StageConfig {
	return StageConfig{
		AutoClear:     true,
		TickOnUpdate:  true,
		ScreenshotDir: "screenshots",
	}
}

// Stage is the root of a scene bound to a Canvas. It drives rendering and
// runs the pointer interaction engine. The embedded Node is the root
// container; add content to it directly.
type Stage struct {
	*Node

	canvas *Canvas

	AutoClear        bool
	MouseMoveOutside bool
	TickOnUpdate     bool
	StrictHitTest    bool

	// DrawRect limits clearing and drawing to a region of the canvas when
	// set.
	DrawRect *Rectangle

	// ScreenshotDir is the directory where screenshots are saved.
	ScreenshotDir string

	// Pointer state
	pointers      map[int]*PointerData
	primaryID     int
	hasPrimary    bool
	mouseX        float64
	mouseY        float64
	mouseInBounds bool

	// Over/rollover state
	overChain      []*Node
	overX, overY   float64
	overFrequency  int
	cancelOverPoll func()
	pollOnUpdate   bool
	cursor         string

	nextStage *Stage
	prevStage *Stage

	ticker       *Ticker
	tickListener *Listener

	lastErr error
	store   EntityStore
	debug   bool

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewStage creates a stage drawing into canvas. canvas may be nil for a
// stage that is only used for ticking and dispatch.
func NewStage(canvas *Canvas, cfg StageConfig) *Stage {
	s := &Stage{
		Node:             NewContainer("stage"),
		canvas:           canvas,
		AutoClear:        cfg.AutoClear,
		MouseMoveOutside: cfg.MouseMoveOutside,
		TickOnUpdate:     cfg.TickOnUpdate,
		StrictHitTest:    cfg.StrictHitTest,
		ScreenshotDir:    cfg.ScreenshotDir,
		pointers:         make(map[int]*PointerData),
	}
	s.Node.stage = s
	if cfg.MouseOverFrequency > 0 {
		s.EnableMouseOver(cfg.MouseOverFrequency)
	}
	return s
}

// Canvas returns the surface the stage draws into.
func (s *Stage) Canvas() *Canvas { return s.canvas }

// SetCanvas replaces the surface the stage draws into.
func (s *Stage) SetCanvas(c *Canvas) { s.canvas = c }

// SetEntityStore sets the store that receives pointer events for nodes
// with an EntityID. nil disables forwarding.
func (s *Stage) SetEntityStore(store EntityStore) { s.store = store }

// LastError returns the most recent probe failure recorded by a pointer
// handler while StrictHitTest is set, and clears it.
func (s *Stage) LastError() error {
	err := s.lastErr
	s.lastErr = nil
	return err
}

// Tick runs the tick walk: a cancelable tickstart, every tick-enabled node
// children first, then tickend.
func (s *Stage) Tick(props TickProps) {
	if !s.TickEnabled {
		return
	}
	if s.HasEventListener(EventTickStart) && !s.DispatchEvent(newTickEvent(EventTickStart, true, props)) {
		return
	}
	s.Node.tick(props)
	if s.HasEventListener(EventTickEnd) {
		s.DispatchEvent(newTickEvent(EventTickEnd, false, props))
	}
}

// Update runs one frame: scripted input, the mouse-over poll when no ticker
// drives it, an optional tick, then a render of the whole tree into the
// canvas bracketed by drawstart (cancelable) and drawend.
func (s *Stage) Update(props TickProps) error {
	if s.canvas == nil {
		return ErrNoCanvas
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	if s.pollOnUpdate && s.prevStage == nil {
		s.testMouseOver(false, nil, nil)
	}

	if s.TickOnUpdate {
		s.Tick(props)
	}
	if s.debug {
		stats.tickTime = time.Since(t0)
		t0 = time.Now()
	}

	if !s.Dispatch(EventDrawStart, false, true) {
		return nil
	}
	s.draw()
	s.Dispatch(EventDrawEnd, false, false)

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.nodeCount, stats.maxDepth = countNodes(s.Node, 1)
		s.debugLog(stats)
	}
	s.flushScreenshots()
	return nil
}

func (s *Stage) draw() {
	c := s.canvas
	c.SetTransform(IdentityMatrix())
	if s.AutoClear {
		if r := s.DrawRect; r != nil {
			c.ClearRect(int(r.X), int(r.Y), int(r.Width), int(r.Height))
		} else {
			c.Clear()
		}
	}
	c.Save()
	if r := s.DrawRect; r != nil {
		c.Clip(NewPath().Rect(r.X, r.Y, r.Width, r.Height))
	}
	s.Node.updateContext(c)
	s.Node.Draw(c, false)
	c.Restore()
}

// Clear makes the canvas transparent.
func (s *Stage) Clear() {
	if s.canvas != nil {
		s.canvas.SetTransform(IdentityMatrix())
		s.canvas.Clear()
	}
}

// ToImage returns a copy of the canvas pixels, or nil without a canvas.
func (s *Stage) ToImage() *image.RGBA {
	if s.canvas == nil {
		return nil
	}
	src := s.canvas.Image()
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// AttachTicker makes t drive the stage: every tick of t runs Update with
// t's timing, and the mouse-over poll is scheduled on t. Any previously
// attached ticker is detached.
func (s *Stage) AttachTicker(t *Ticker) {
	s.DetachTicker()
	s.ticker = t
	s.tickListener = t.On(EventTick, func(e *Event) {
		if err := s.Update(TickProps{Delta: e.Delta, Time: e.Time, Paused: e.Paused}); err != nil {
			Logger().Warn("arbor: stage update", "err", err)
		}
	})
	s.scheduleMouseOver()
}

// DetachTicker stops t from driving the stage.
func (s *Stage) DetachTicker() {
	if s.ticker == nil {
		return
	}
	s.ticker.RemoveEventListener(EventTick, s.tickListener, false)
	s.ticker = nil
	s.tickListener = nil
	s.scheduleMouseOver()
}

// Ticker returns the attached ticker, or nil.
func (s *Stage) Ticker() *Ticker { return s.ticker }

// SetNextStage chains next after s. Pointer input delivered to s is relayed
// to next for its own hit testing. Passing nil unlinks the current next
// stage.
func (s *Stage) SetNextStage(next *Stage) {
	if s.nextStage != nil {
		s.nextStage.prevStage = nil
	}
	if next != nil {
		next.prevStage = s
	}
	s.nextStage = next
}

// NextStage returns the stage input is relayed to, or nil.
func (s *Stage) NextStage() *Stage { return s.nextStage }

// CurrentCursor returns the cursor of the node currently under the mouse,
// or "".
func (s *Stage) CurrentCursor() string { return s.cursor }

func (s *Stage) setCursor(cursor string) {
	if s.cursor == cursor {
		return
	}
	s.cursor = cursor
	s.Dispatch(EventCursorChange, false, false)
}

// SetDebugMode enables per-frame stats and tree checks, logged through
// Logger at debug and warn level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
