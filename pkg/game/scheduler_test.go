package game

import (
	"reflect"
	"testing"
	"time"
)

const frame = 1.0 / 60

func TestSchedulerAfterNeverSynchronous(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(0, func() { fired = true })

	if fired {
		t.Fatal("After must not fire synchronously")
	}
	s.Advance(0)
	if !fired {
		t.Error("zero-delay callback should fire on the next Advance")
	}
}

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(300*time.Millisecond, func() { got = append(got, "c") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(100*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(1)

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fire order = %v, want %v", got, want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestSchedulerCascadeDeferredToNextAdvance(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.After(10*time.Millisecond, func() {
		count++
		// 回调中注册的新回调即使已经到期也留到下一次 Advance
		s.After(0, func() { count++ })
		s.After(time.Second, func() { count++ })
	})

	s.Advance(0.5)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if s.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", s.Pending())
	}

	s.Advance(0)
	if count != 2 {
		t.Errorf("count after next Advance = %d, want 2", count)
	}
}

func TestSchedulerSelfRescheduleReturns(t *testing.T) {
	s := NewScheduler()
	fired := 0
	var again func()
	again = func() {
		fired++
		s.After(0, again)
	}
	s.After(0, again)

	for i := 1; i <= 3; i++ {
		s.Advance(frame)
		if fired != i {
			t.Fatalf("after %d Advance calls fired = %d, want %d", i, fired, i)
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
}

// 同一次 Advance 中较早到期的回调仍然先于较晚到期的回调触发
func TestSchedulerDueOrderWithNewTimers(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(100*time.Millisecond, func() {
		got = append(got, "a")
		s.After(0, func() { got = append(got, "new") })
	})
	s.After(200*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(0.5)
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("fire order = %v, want %v", got, want)
	}
	s.Advance(0)
	if want := []string{"a", "b", "new"}; !reflect.DeepEqual(got, want) {
		t.Errorf("fire order = %v, want %v", got, want)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(50*time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel of a pending timer should succeed")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	s.Advance(1)
	if fired {
		t.Error("cancelled callback fired")
	}
	if s.Cancel(0) {
		t.Error("Cancel(0) should report false")
	}
}

func TestSchedulerFrames(t *testing.T) {
	s := NewScheduler()
	var dts []float64
	id := s.OnFrame(func(dt float64) { dts = append(dts, dt) })

	s.Advance(frame)
	s.Advance(frame)
	if len(dts) != 2 || dts[0] != frame {
		t.Fatalf("frame callbacks = %v", dts)
	}
	if s.PendingFrames() != 1 {
		t.Errorf("PendingFrames() = %d, want 1", s.PendingFrames())
	}

	s.Cancel(id)
	s.Advance(frame)
	if len(dts) != 2 {
		t.Error("cancelled frame callback still fires")
	}
	if s.PendingFrames() != 0 {
		t.Errorf("PendingFrames() = %d, want 0", s.PendingFrames())
	}
}

func TestSchedulerFrameCancelDuringFrame(t *testing.T) {
	s := NewScheduler()
	var second TimerID
	secondFired := false
	s.OnFrame(func(float64) { s.Cancel(second) })
	second = s.OnFrame(func(float64) { secondFired = true })

	s.Advance(frame)
	if secondFired {
		t.Error("frame callback cancelled earlier in the same frame must not fire")
	}
}

func TestSchedulerNow(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 60; i++ {
		s.Advance(frame)
	}
	if d := s.Now() - time.Second; d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("Now() = %v after 60 frames", s.Now())
	}
}
