package arbor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// chain builds root -> mid -> leaf.
func chain() (root, mid, leaf *Node) {
	root, mid, leaf = NewContainer("root"), NewContainer("mid"), NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	return root, mid, leaf
}

func TestDispatchPhaseOrder(t *testing.T) {
	root, mid, leaf := chain()
	var got []string
	rec := func(name string) func(*Event) {
		return func(e *Event) { got = append(got, name+":"+e.Phase.String()) }
	}
	root.On("ping", rec("root-capture"), WithCapture())
	root.On("ping", rec("root-bubble"))
	mid.On("ping", rec("mid-capture"), WithCapture())
	mid.On("ping", rec("mid-bubble"))
	leaf.On("ping", rec("leaf-bubble"))
	leaf.On("ping", rec("leaf-capture"), WithCapture())

	leaf.DispatchEvent(NewEvent("ping", true, false))

	want := []string{
		"root-capture:capture",
		"mid-capture:capture",
		"leaf-capture:at-target",
		"leaf-bubble:at-target",
		"mid-bubble:bubble",
		"root-bubble:bubble",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchNonBubbling(t *testing.T) {
	root, _, leaf := chain()
	var got []string
	root.On("ping", func(*Event) { got = append(got, "root-bubble") })
	root.On("ping", func(*Event) { got = append(got, "root-capture") }, WithCapture())
	leaf.On("ping", func(*Event) { got = append(got, "leaf") })

	leaf.DispatchEvent(NewEvent("ping", false, false))
	if diff := cmp.Diff([]string{"leaf"}, got); diff != "" {
		t.Errorf("non-bubbling event reached ancestors (-want +got):\n%s", diff)
	}
}

func TestDispatchTargets(t *testing.T) {
	root, mid, leaf := chain()
	mid.On("ping", func(e *Event) {
		if e.Target != EventTarget(leaf) || e.CurrentTarget != EventTarget(mid) {
			t.Errorf("Target=%v CurrentTarget=%v", e.Target, e.CurrentTarget)
		}
		if e.TargetNode() != leaf || e.CurrentNode() != mid {
			t.Error("node accessors mismatch")
		}
	})
	_ = root
	leaf.Dispatch("ping", true, false)
}

func TestStopPropagation(t *testing.T) {
	root, mid, leaf := chain()
	var got []string
	mid.On("ping", func(e *Event) {
		got = append(got, "mid-1")
		e.StopPropagation()
	})
	mid.On("ping", func(*Event) { got = append(got, "mid-2") })
	root.On("ping", func(*Event) { got = append(got, "root") })

	leaf.Dispatch("ping", true, false)
	if diff := cmp.Diff([]string{"mid-1", "mid-2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStopPropagationInCapture(t *testing.T) {
	root, _, leaf := chain()
	var got []string
	root.On("ping", func(e *Event) {
		got = append(got, "root-capture")
		e.StopPropagation()
	}, WithCapture())
	leaf.On("ping", func(*Event) { got = append(got, "leaf") })

	leaf.Dispatch("ping", true, false)
	if diff := cmp.Diff([]string{"root-capture"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStopImmediatePropagation(t *testing.T) {
	_, mid, leaf := chain()
	var got []string
	leaf.On("ping", func(e *Event) {
		got = append(got, "leaf-1")
		e.StopImmediatePropagation()
	})
	leaf.On("ping", func(*Event) { got = append(got, "leaf-2") })
	mid.On("ping", func(*Event) { got = append(got, "mid") })

	leaf.Dispatch("ping", true, false)
	if diff := cmp.Diff([]string{"leaf-1"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreventDefault(t *testing.T) {
	n := NewContainer("n")
	n.On("ping", func(e *Event) { e.PreventDefault() })

	if n.Dispatch("ping", false, true) {
		t.Error("cancelable event prevented, want false")
	}
	if !n.Dispatch("ping", false, false) {
		t.Error("non-cancelable event cannot be prevented, want true")
	}
}

func TestAddEventListenerDeduplicates(t *testing.T) {
	n := NewContainer("n")
	var got []string
	a := NewListener(func(*Event) { got = append(got, "a") })
	b := NewListener(func(*Event) { got = append(got, "b") })
	n.AddEventListener("ping", a, false)
	n.AddEventListener("ping", b, false)
	n.AddEventListener("ping", a, false)

	n.Dispatch("ping", false, false)
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("re-adding should move to the end (-want +got):\n%s", diff)
	}
}

func TestRemoveEventListener(t *testing.T) {
	n := NewContainer("n")
	calls := 0
	l := n.On("ping", func(*Event) { calls++ })
	c := n.On("ping", func(*Event) { calls++ }, WithCapture())

	n.RemoveEventListener("ping", l, true) // wrong phase, no-op
	n.Dispatch("ping", false, false)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}

	n.Off("ping", l, false)
	n.Off("ping", c, true)
	if n.HasEventListener("ping") {
		t.Error("listeners should be gone")
	}
}

func TestRemoveAllEventListeners(t *testing.T) {
	n := NewContainer("n")
	n.On("a", func(*Event) {})
	n.On("a", func(*Event) {}, WithCapture())
	n.On("b", func(*Event) {})

	n.RemoveAllEventListeners("a")
	if n.HasEventListener("a") || !n.HasEventListener("b") {
		t.Error("RemoveAllEventListeners(a) wrong")
	}
	n.RemoveAllEventListeners("")
	if n.HasEventListener("b") {
		t.Error("RemoveAllEventListeners(\"\") should clear everything")
	}
}

func TestListenerRemovedDuringDispatchStillRuns(t *testing.T) {
	n := NewContainer("n")
	var got []string
	var second *Listener
	n.On("ping", func(*Event) {
		got = append(got, "first")
		n.Off("ping", second, false)
	})
	second = n.On("ping", func(*Event) { got = append(got, "second") })

	n.Dispatch("ping", false, false)
	n.Dispatch("ping", false, false)
	if diff := cmp.Diff([]string{"first", "second", "first"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerAddedDuringDispatchWaits(t *testing.T) {
	n := NewContainer("n")
	var got []string
	n.On("ping", func(*Event) {
		got = append(got, "first")
		n.On("ping", func(*Event) { got = append(got, "late") })
	}, WithOnce())

	n.Dispatch("ping", false, false)
	if diff := cmp.Diff([]string{"first"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEventRemove(t *testing.T) {
	n := NewContainer("n")
	var got []string
	n.On("ping", func(e *Event) {
		got = append(got, "a")
		e.Remove()
	})
	n.On("ping", func(*Event) { got = append(got, "b") })

	n.Dispatch("ping", false, false)
	n.Dispatch("ping", false, false)
	if diff := cmp.Diff([]string{"a", "b", "b"}, got); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	if !n.HasEventListener("ping") {
		t.Error("the other listener should remain")
	}
}

func TestOnce(t *testing.T) {
	n := NewContainer("n")
	calls := 0
	n.On("ping", func(*Event) { calls++ }, WithOnce())
	n.AddEventListener("ping", NewListener(func(*Event) { calls += 10 }).Once(), true)

	n.Dispatch("ping", false, false)
	n.Dispatch("ping", false, false)
	if calls != 11 {
		t.Errorf("calls = %d, want 11", calls)
	}
}

func TestNilListenerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil listener")
		}
	}()
	NewContainer("n").On("ping", nil)
}

func TestWillTrigger(t *testing.T) {
	root, _, leaf := chain()
	if leaf.WillTrigger("ping") {
		t.Error("WillTrigger with no listeners")
	}
	root.On("ping", func(*Event) {}, WithCapture())
	if !leaf.WillTrigger("ping") {
		t.Error("WillTrigger should see ancestor listeners")
	}
}

func TestDispatchWithoutListenersAllocatesNothing(t *testing.T) {
	n := NewContainer("n")
	allocs := testing.AllocsPerRun(10, func() {
		n.Dispatch("ping", false, false)
	})
	if allocs != 0 {
		t.Errorf("allocs = %v, want 0", allocs)
	}
}

func TestEventReuse(t *testing.T) {
	a, b := NewContainer("a"), NewContainer("b")
	calls := 0
	a.On("ping", func(e *Event) { e.StopImmediatePropagation() })
	b.On("ping", func(*Event) { calls++ })
	b.On("ping", func(*Event) { calls++ })

	evt := NewEvent("ping", false, false)
	a.DispatchEvent(evt)
	b.DispatchEvent(evt)
	if calls != 2 {
		t.Errorf("calls = %d, want 2; propagation flags should reset between dispatches", calls)
	}
}

// plainTarget is a non-node EventTarget.
type plainTarget struct {
	EventDispatcher
	parent EventTarget
}

func (p *plainTarget) ParentTarget() EventTarget { return p.parent }

func TestDispatchCustomTarget(t *testing.T) {
	outer := &plainTarget{}
	inner := &plainTarget{parent: outer}
	got := 0
	outer.On("ping", func(e *Event) {
		got++
		if e.TargetNode() != nil {
			t.Error("TargetNode should be nil for non-node targets")
		}
		x, y := e.Local()
		if x != 0 || y != 0 {
			t.Errorf("Local = (%v, %v)", x, y)
		}
	})
	DispatchEvent(inner, NewEvent("ping", true, false))
	if got != 1 {
		t.Errorf("outer calls = %d, want 1", got)
	}
	if !WillTrigger(inner, "ping") {
		t.Error("WillTrigger = false")
	}
}
