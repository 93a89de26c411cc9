package arbor

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type spinner struct {
	Shape
	ticks int
	last  TickProps
}

func (s *spinner) Tick(props TickProps) {
	s.ticks++
	s.last = props
}

func TestTickOrder(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	a, a1, b := NewContainer("a"), NewContainer("a1"), NewContainer("b")
	a.AddChild(a1)
	s.AddChild(a, b)

	var order []string
	for _, n := range []*Node{s.Node, a, a1, b} {
		n.On(EventTick, func(*Event) { order = append(order, n.Name) })
	}
	s.Tick(TickProps{})

	want := []string{"b", "a1", "a", "stage"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("tick order (-want +got):\n%s", diff)
	}
}

func TestTickFlags(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	off := NewContainer("off")
	off.TickEnabled = false
	offChild := NewContainer("offChild")
	off.AddChild(offChild)
	shallow := NewContainer("shallow")
	shallow.TickChildren = false
	shallowChild := NewContainer("shallowChild")
	shallow.AddChild(shallowChild)
	s.AddChild(off, shallow)

	ticked := map[string]bool{}
	for _, n := range []*Node{off, offChild, shallow, shallowChild} {
		n.On(EventTick, func(*Event) { ticked[n.Name] = true })
	}
	s.Tick(TickProps{})

	want := map[string]bool{"shallow": true}
	if diff := cmp.Diff(want, ticked); diff != "" {
		t.Errorf("ticked nodes (-want +got):\n%s", diff)
	}
}

func TestTickSnapshotsChildren(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	a, b := NewContainer("a"), NewContainer("b")
	s.AddChild(a, b)

	aTicked := false
	b.On(EventTick, func(*Event) { s.RemoveChild(a) })
	a.On(EventTick, func(*Event) { aTicked = true })
	s.Tick(TickProps{})

	if !aTicked {
		t.Error("child removed mid-walk was skipped")
	}
}

func TestTickStartCancel(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	n := NewContainer("n")
	s.AddChild(n)

	ticked, ended := false, false
	s.On(EventTickStart, func(e *Event) { e.PreventDefault() })
	s.On(EventTickEnd, func(*Event) { ended = true })
	n.On(EventTick, func(*Event) { ticked = true })
	s.Tick(TickProps{})

	if ticked || ended {
		t.Errorf("canceled tick ran: ticked=%v ended=%v", ticked, ended)
	}
}

func TestTickEventCarriesProps(t *testing.T) {
	s := NewStage(nil, DefaultStageConfig())
	sp := &spinner{Shape: Shape{Path: NewPath().Rect(0, 0, 1, 1)}}
	n := NewNode("spin", sp)
	s.AddChild(n)

	var got *Event
	n.On(EventTick, func(e *Event) { got = e })
	props := TickProps{Delta: 16 * time.Millisecond, Time: time.Second, Paused: true}
	s.Tick(props)

	if got == nil {
		t.Fatal("no tick event")
	}
	if got.Delta != props.Delta || got.Time != props.Time || !got.Paused {
		t.Errorf("tick event = delta %v time %v paused %v", got.Delta, got.Time, got.Paused)
	}
	if sp.ticks != 1 || sp.last != props {
		t.Errorf("Tickable drawable ticks=%d last=%+v", sp.ticks, sp.last)
	}
}

func TestUpdateTickOnUpdate(t *testing.T) {
	s := newDrawStage(10, 10)
	ticks := 0
	s.On(EventTick, func(*Event) { ticks++ })

	s.Update(TickProps{})
	s.TickOnUpdate = false
	s.Update(TickProps{})

	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}
