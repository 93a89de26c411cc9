// Package ebitenhost runs an arbor Stage inside an Ebitengine window.
//
// The host owns the frame loop: each Ebitengine tick it forwards mouse and
// touch input to the stage, advances a Ticker that drives Stage.Update, and
// copies the stage canvas to the screen.
package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the window and canvas size in pixels. Default 640x480.
	Width, Height int
	// TPS is the tick rate. Default 60.
	TPS int
	// MouseOverFrequency enables over/out polling at this rate. 0 keeps the
	// stage's current setting.
	MouseOverFrequency int
	// ClearColor fills the screen behind the canvas. nil leaves it black.
	ClearColor color.Color
	// ShowFPS overlays the measured FPS and TPS.
	ShowFPS bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}

// Game adapts a Stage to ebiten.Game.
type Game struct {
	stage  *arbor.Stage
	ticker *arbor.Ticker
	cfg    RunConfig

	input     inputState
	offscreen *ebiten.Image
	fps       *fpsOverlay
}

// NewGame creates a Game for stage. A stage without a canvas gets one sized
// to the config. The stage is driven by a new Ticker owned by the Game.
func NewGame(stage *arbor.Stage, cfg RunConfig) *Game {
	cfg = cfg.withDefaults()
	if stage.Canvas() == nil {
		stage.SetCanvas(arbor.NewCanvas(cfg.Width, cfg.Height))
	}
	g := &Game{
		stage:  stage,
		ticker: arbor.NewTicker(nil),
		cfg:    cfg,
		input:  newInputState(),
	}
	stage.AttachTicker(g.ticker)
	if cfg.MouseOverFrequency > 0 {
		stage.EnableMouseOver(cfg.MouseOverFrequency)
	}
	stage.On(arbor.EventCursorChange, func(*arbor.Event) {
		applyCursor(stage.CurrentCursor())
	})
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Stage returns the stage being run.
func (g *Game) Stage() *arbor.Stage { return g.stage }

// Ticker returns the ticker driving the stage.
func (g *Game) Ticker() *arbor.Ticker { return g.ticker }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.input.apply(g.stage, readFrameInput())
	g.ticker.Advance()
	if err := g.stage.LastError(); err != nil {
		arbor.Logger().Warn("ebitenhost: hit test", "err", err)
	}
	if g.fps != nil {
		g.fps.update(1 / float64(g.cfg.TPS))
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != nil {
		screen.Fill(g.cfg.ClearColor)
	}
	canvas := g.stage.Canvas()
	if canvas == nil || canvas.Width() == 0 || canvas.Height() == 0 {
		return
	}
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != canvas.Width() || g.offscreen.Bounds().Dy() != canvas.Height() {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(canvas.Width(), canvas.Height())
	}
	// Canvas pixels are premultiplied RGBA, which is what WritePixels expects.
	g.offscreen.WritePixels(canvas.Image().Pix)
	screen.DrawImage(g.offscreen, nil)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs stage until the window is closed.
func Run(stage *arbor.Stage, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(NewGame(stage, cfg))
}
