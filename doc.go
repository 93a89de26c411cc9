// Package arbor is a retained-mode 2D scene graph with a pointer
// interaction engine.
//
// A scene is a tree of [Node] values rooted at a [Stage]. Each node carries
// a transform (position, scale, rotation in degrees, skew, registration
// point), visual state (alpha, visibility, shadow, blend mode, mask) and
// interaction flags. Content comes from a [Drawable]: [Shape] fills a
// [Path], [Bitmap] draws an image, and host programs may supply their own.
//
// # Quick start
//
// The ebitenhost subpackage opens a window and drives a stage for you:
//
//	stage := arbor.NewStage(nil, arbor.DefaultStageConfig())
//	box := arbor.NewRect("box", 80, 40, color.RGBA{80, 180, 255, 255})
//	box.On(arbor.EventClick, func(e *arbor.Event) { box.Alpha = 0.5 })
//	stage.AddChild(box)
//	ebitenhost.Run(stage, ebitenhost.RunConfig{Title: "demo"})
//
// Without a window, give the stage a [Canvas] and call [Stage.Update] from
// your own loop, feeding input through [Stage.PointerDown],
// [Stage.PointerMove] and [Stage.PointerUp].
//
// # Rendering
//
// [Stage.Update] optionally ticks the tree and then draws it into the
// stage's Canvas, a software raster surface with a save/restore state stack.
// Drawing is bracketed by drawstart (cancelable) and drawend events. Nodes
// may be cached into an owned surface with [Node.Cache].
//
// # Events
//
// Every node is an event target. Events propagate in three phases: capture
// from the root down to the target's parent, at-target, and bubble back up
// when the event bubbles. Listeners are registered with [EventDispatcher.On]
// or [EventDispatcher.AddEventListener] and removed through the returned
// [Listener] handle.
//
// # Pointer interaction
//
// Hit testing draws each candidate into a 1×1 probe surface and reads back
// the pixel, so any drawable content is hit-testable at pixel accuracy.
// The stage turns raw pointer input into pointerdown, pointerup, click,
// dblclick and drag events, tracks multiple pointers, and with
// [Stage.EnableMouseOver] emits pointerover/pointerout and rollover/rollout
// and follows the [Node.Cursor] under the mouse. Stages can be chained with
// [Stage.SetNextStage] so input falls through to scenes drawn below.
//
// # Debugging
//
// [SetLogger] routes arbor's log output to a [log/slog] logger.
// [Stage.SetDebugMode] logs per-frame stats and panics on use of disposed
// nodes. [Stage.InjectClick], [Stage.InjectDrag] and [LoadTestScript] drive
// a stage with scripted input, and [Stage.Screenshot] saves frames as PNG.
//
// Tweens are provided via [gween]; the ecs submodule forwards pointer
// events to a [Donburi] world.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
