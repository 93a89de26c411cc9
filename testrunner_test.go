package arbor

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil || !strings.Contains(err.Error(), "parse test script") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`))
	if err == nil || !strings.Contains(err.Error(), "teleport") {
		t.Errorf("expected unknown action error, got %v", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s, box := newInteractiveStage()
	clicks := 0
	box.On(EventClick, func(*Event) { clicks++ })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release (2 events).
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInjectedInput()
	s.processInjectedInput()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_PressMoveRelease(t *testing.T) {
	s, box := newInteractiveStage()
	var events []string
	record := func(e *Event) { events = append(events, e.Type) }
	box.On(EventPointerDown, record)
	box.On(EventDrag, record)
	box.On(EventPointerUp, record)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 10, "y": 10},
		{"action": "move", "x": 20, "y": 20},
		{"action": "release", "x": 30, "y": 30}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for range 6 {
		if err := s.Update(TickProps{}); err != nil {
			t.Fatal(err)
		}
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
	want := []string{EventPointerDown, EventDrag, EventDrag, EventPointerUp}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewStage(NewCanvas(10, 10), DefaultStageConfig())

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done during wait")
	}
	// Frame 2: waitCount 2 -> 1.
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done during wait countdown")
	}
	// Frame 3: waitCount 1 -> 0.
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done, screenshot step not yet executed")
	}
	// Frame 4: execute screenshot step, runner finishes.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s, _ := newInteractiveStage()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 150, "toY": 150, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(s.injectQueue))
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewStage(NewCanvas(10, 10), DefaultStageConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 5, "y": 5},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.injectQueue))
	}

	// Should not advance while the inject queue is not drained.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
