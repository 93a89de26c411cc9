package arbor

import (
	"slices"
	"time"
)

// Ticker is an explicitly owned tick source. Each Advance reads the clock,
// runs any due interval callbacks, then dispatches a tick event carrying the
// elapsed time. Nothing advances on its own; the host calls Advance from its
// frame loop.
type Ticker struct {
	EventDispatcher

	clock func() time.Time

	started    bool
	start      time.Time
	last       time.Time
	paused     bool
	pausedTime time.Duration

	timers []*tickerTimer
}

type tickerTimer struct {
	interval time.Duration
	next     time.Time
	fn       func()
}

// NewTicker creates a ticker reading time from clock. A nil clock uses
// time.Now.
func NewTicker(clock func() time.Time) *Ticker {
	if clock == nil {
		clock = time.Now
	}
	return &Ticker{clock: clock}
}

// ParentTarget returns nil; a ticker has no propagation path.
func (t *Ticker) ParentTarget() EventTarget { return nil }

// SetPaused pauses or resumes the ticker. Paused ticks are still dispatched
// with Paused set, and paused time is excluded from RunTime.
func (t *Ticker) SetPaused(paused bool) { t.paused = paused }

// Paused reports whether the ticker is paused.
func (t *Ticker) Paused() bool { return t.paused }

// Time returns the time since the first Advance.
func (t *Ticker) Time() time.Duration {
	if !t.started {
		return 0
	}
	return t.last.Sub(t.start)
}

// RunTime returns Time minus the time spent paused.
func (t *Ticker) RunTime() time.Duration {
	return t.Time() - t.pausedTime
}

// Every runs fn at most once per interval, checked on each Advance. Missed
// intervals are not replayed. The returned func cancels the timer.
func (t *Ticker) Every(interval time.Duration, fn func()) (cancel func()) {
	tm := &tickerTimer{interval: interval, fn: fn}
	if t.started {
		tm.next = t.last.Add(interval)
	}
	t.timers = append(t.timers, tm)
	return func() {
		if i := slices.Index(t.timers, tm); i >= 0 {
			t.timers = slices.Delete(t.timers, i, i+1)
		}
	}
}

// Advance reads the clock, runs due timers, and dispatches a tick event.
func (t *Ticker) Advance() {
	now := t.clock()
	if !t.started {
		t.started = true
		t.start = now
		t.last = now
		for _, tm := range t.timers {
			tm.next = now.Add(tm.interval)
		}
	}
	delta := now.Sub(t.last)
	t.last = now
	if t.paused {
		t.pausedTime += delta
	}

	for _, tm := range slices.Clone(t.timers) {
		if tm.next.IsZero() {
			tm.next = now.Add(tm.interval)
			continue
		}
		if now.Before(tm.next) {
			continue
		}
		tm.next = now.Add(tm.interval)
		tm.fn()
	}

	if t.HasEventListener(EventTick) {
		DispatchEvent(t, newTickEvent(EventTick, false, TickProps{
			Delta:  delta,
			Time:   t.Time(),
			Paused: t.paused,
		}))
	}
}
