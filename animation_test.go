package arbor

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")

	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.ScaleX-2.0) > 0.01 || math.Abs(node.ScaleY-3.0) > 0.01 {
		t.Errorf("scale = (%f,%f), want ~(2,3)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")

	tw := TweenAlpha(node, 0.0, 1.0, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5 at halfway", node.Alpha)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(node.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.0", node.Alpha)
	}
}

func TestTweenRotationDegrees(t *testing.T) {
	node := NewContainer("rot")

	tw := TweenRotation(node, 180, 1.0, ease.Linear)
	tw.Update(0.5)
	tw.Update(0.5)

	if !tw.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(node.Rotation-180) > 0.05 {
		t.Errorf("Rotation = %f, want ~180", node.Rotation)
	}
}

func TestTweenRegistration(t *testing.T) {
	node := NewContainer("reg")

	tw := TweenRegistration(node, 8, -4, 1.0, ease.Linear)
	tw.Update(1)

	if math.Abs(node.RegX-8) > 0.01 || math.Abs(node.RegY+4) > 0.01 {
		t.Errorf("registration = (%f,%f), want (8,-4)", node.RegX, node.RegY)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	node := NewContainer("done")
	g := TweenPosition(node, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Updating a finished group is a no-op.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupDisposedNode(t *testing.T) {
	node := NewContainer("disposed")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)
	node.Dispose()
	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed node detected")
	}
	if node.X != 10 || node.Y != 20 {
		t.Errorf("position changed to (%f,%f) on disposed node", node.X, node.Y)
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	nodeL := NewContainer("linear")
	nodeC := NewContainer("cubic")

	gL := TweenPosition(nodeL, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(nodeC, 100, 0, 1.0, ease.OutCubic)
	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(nodeL.X-nodeC.X) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", nodeL.X, nodeC.X)
	}
}

func TestTweenAttachFollowsTicks(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	node := NewContainer("n")
	s.AddChild(node)

	g := TweenAlpha(node, 0, 1.0, ease.Linear).Attach()
	half := 500 * time.Millisecond

	s.Tick(TickProps{Delta: half})
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f after half a second, want ~0.5", node.Alpha)
	}

	s.Tick(TickProps{Delta: half, Paused: true})
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("paused tick advanced tween: Alpha = %f", node.Alpha)
	}

	s.Tick(TickProps{Delta: half})
	if !g.Done {
		t.Fatal("expected Done")
	}
	if node.HasEventListener(EventTick) {
		t.Error("finished group still listening for ticks")
	}
}

func TestTweenDetach(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	node := NewContainer("n")
	s.AddChild(node)

	g := TweenPosition(node, 100, 0, 1.0, ease.Linear).Attach()
	g.Detach()
	s.Tick(TickProps{Delta: time.Second})

	if node.X != 0 || g.Done {
		t.Errorf("detached group advanced: X = %f, Done = %v", node.X, g.Done)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewContainer("alloc")
	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)

	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
