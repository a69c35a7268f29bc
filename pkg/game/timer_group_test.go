package game

import (
	"testing"
	"time"
)

func TestTimerGroupCancelAll(t *testing.T) {
	s := NewScheduler()
	g := NewTimerGroup(s)

	fired := 0
	for i := 0; i < 5; i++ {
		g.After(time.Duration(i*100)*time.Millisecond, func() { fired++ })
	}
	g.OnFrame(func(float64) { fired++ })

	if g.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", g.Len())
	}

	if n := g.CancelAll(); n != 6 {
		t.Errorf("CancelAll() = %d, want 6", n)
	}
	s.Advance(1)
	if fired != 0 {
		t.Errorf("%d callbacks fired after CancelAll", fired)
	}
	if s.Pending() != 0 || s.PendingFrames() != 0 {
		t.Error("scheduler still holds cancelled callbacks")
	}
}

func TestTimerGroupForgetsFiredTimers(t *testing.T) {
	s := NewScheduler()
	g := NewTimerGroup(s)

	g.After(10*time.Millisecond, func() {})
	g.After(time.Second, func() {})
	s.Advance(0.1)

	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	if n := g.CancelAll(); n != 1 {
		t.Errorf("CancelAll() = %d, want 1", n)
	}
}

func TestTimerGroupIsolation(t *testing.T) {
	s := NewScheduler()
	a := NewTimerGroup(s)
	b := NewTimerGroup(s)

	bFired := false
	a.After(10*time.Millisecond, func() {})
	b.After(10*time.Millisecond, func() { bFired = true })

	a.CancelAll()
	s.Advance(1)
	if !bFired {
		t.Error("cancelling one group must not affect another")
	}
}

func TestTimerGroupNilScheduler(t *testing.T) {
	g := NewTimerGroup(nil)
	if id := g.After(0, func() {}); id != 0 {
		t.Errorf("After without scheduler = %d, want 0", id)
	}
	if id := g.OnFrame(func(float64) {}); id != 0 {
		t.Errorf("OnFrame without scheduler = %d, want 0", id)
	}
	if g.CancelAll() != 0 || g.Len() != 0 {
		t.Error("nil-scheduler group should stay empty")
	}
}
