package confetti

import (
	"testing"
	"time"
)

func TestSchedulerRunsInDeadlineOrder(t *testing.T) {
	s := NewFrameScheduler()
	var order []int
	s.After(3*time.Second, func() { order = append(order, 3) })
	s.After(1*time.Second, func() { order = append(order, 1) })
	s.After(2*time.Second, func() { order = append(order, 2) })

	if n := s.Advance(5 * time.Second); n != 3 {
		t.Errorf("Advance ran %d, want 3", n)
	}
	for i, v := range []int{1, 2, 3} {
		if order[i] != v {
			t.Fatalf("order = %v, want [1 2 3]", order)
		}
	}
}

func TestSchedulerTiesKeepScheduleOrder(t *testing.T) {
	s := NewFrameScheduler()
	var order []string
	for _, name := range []string{"a", "b", "c", "d"} {
		s.After(time.Second, func() { order = append(order, name) })
	}
	s.Advance(time.Second)
	if got := len(order); got != 4 {
		t.Fatalf("ran %d, want 4", got)
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if order[i] != want {
			t.Errorf("order = %v, want [a b c d]", order)
			break
		}
	}
}

func TestSchedulerNotBeforeDeadline(t *testing.T) {
	s := NewFrameScheduler()
	fired := false
	s.After(20*time.Second, func() { fired = true })
	s.Advance(19*time.Second + 999*time.Millisecond)
	if fired {
		t.Fatal("fired before deadline")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
	s.Advance(time.Millisecond)
	if !fired {
		t.Error("did not fire at deadline")
	}
	if s.Now() != 20*time.Second {
		t.Errorf("Now = %v, want 20s", s.Now())
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewFrameScheduler()
	fired := 0
	keep := s.After(time.Second, func() { fired++ })
	drop := s.After(time.Second, func() { fired += 10 })

	if !drop.Stop() {
		t.Error("first Stop = false, want true")
	}
	if drop.Stop() {
		t.Error("second Stop = true, want false")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
	s.Advance(2 * time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if keep.Stop() {
		t.Error("Stop after firing = true, want false")
	}
}

func TestSchedulerStopFromCallback(t *testing.T) {
	s := NewFrameScheduler()
	var later Timer
	ran := false
	s.After(time.Second, func() { later.Stop() })
	later = s.After(time.Second, func() { ran = true })
	s.Advance(time.Second)
	if ran {
		t.Error("timer stopped by an earlier callback still ran")
	}
}

func TestSchedulerNestedZeroDelay(t *testing.T) {
	s := NewFrameScheduler()
	var order []string
	s.After(time.Second, func() {
		order = append(order, "outer")
		s.After(0, func() { order = append(order, "inner") })
	})
	if n := s.Advance(time.Second); n != 2 {
		t.Errorf("Advance ran %d, want 2", n)
	}
	if len(order) != 2 || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}

func TestSchedulerNegativeDelay(t *testing.T) {
	s := NewFrameScheduler()
	fired := false
	s.After(-time.Second, func() { fired = true })
	s.Advance(0)
	if !fired {
		t.Error("negative delay should fire on the next Advance")
	}
}

func TestSchedulerAdvanceSeconds(t *testing.T) {
	s := NewFrameScheduler()
	fired := false
	s.After(seconds(0.5), func() { fired = true })
	s.AdvanceSeconds(0.25)
	if fired {
		t.Fatal("fired early")
	}
	s.AdvanceSeconds(0.25)
	if !fired {
		t.Error("did not fire at 0.5s")
	}
}

func TestSchedulerManyTimers(t *testing.T) {
	s := NewFrameScheduler()
	const n = 200
	timers := make([]Timer, n)
	var ran []time.Duration
	for i := 0; i < n; i++ {
		d := time.Duration((i*37)%n) * time.Millisecond
		timers[i] = s.After(d, func() { ran = append(ran, d) })
	}
	for i := 0; i < n; i += 2 {
		timers[i].Stop()
	}
	if s.Pending() != n/2 {
		t.Errorf("Pending = %d, want %d", s.Pending(), n/2)
	}
	if got := s.Advance(time.Second); got != n/2 {
		t.Errorf("ran %d, want %d", got, n/2)
	}
	for i := 1; i < len(ran); i++ {
		if ran[i] < ran[i-1] {
			t.Fatalf("callback %d deadline %v ran after %v", i, ran[i], ran[i-1])
		}
	}
}
