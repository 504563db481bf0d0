package confetti

import (
	"container/heap"
	"time"
)

// Timer is a token for a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running; false means it already ran or was stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay, on the same loop that drives
// the scene. Callbacks are never run concurrently with each other or with
// scene updates.
type Scheduler interface {
	After(delay time.Duration, fn func()) Timer
}

// FrameScheduler is a Scheduler driven by the host's update loop. Its clock
// only moves when Advance is called. Due callbacks run in deadline order,
// ties in the order they were scheduled.
type FrameScheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewFrameScheduler creates a scheduler whose clock starts at zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// After schedules fn to run once the clock has advanced by delay. A negative
// delay is treated as zero.
func (s *FrameScheduler) After(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &frameTimer{
		sched:    s,
		deadline: s.now + delay,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by dt and runs every callback now due. A
// callback that schedules another already-due callback sees it run within
// the same Advance. It returns the number of callbacks run.
func (s *FrameScheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for len(s.queue) > 0 && s.queue[0].deadline <= s.now {
		t := heap.Pop(&s.queue).(*frameTimer)
		t.done = true
		if t.fn != nil {
			t.fn()
		}
		ran++
	}
	return ran
}

// AdvanceSeconds is Advance for a frame delta in seconds.
func (s *FrameScheduler) AdvanceSeconds(dt float64) int {
	return s.Advance(seconds(dt))
}

// Now returns the scheduler clock.
func (s *FrameScheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks waiting to run.
func (s *FrameScheduler) Pending() int { return len(s.queue) }

type frameTimer struct {
	sched    *FrameScheduler
	deadline time.Duration
	seq      uint64
	fn       func()
	index    int
	done     bool
}

func (t *frameTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	heap.Remove(&t.sched.queue, t.index)
	t.fn = nil
	return true
}

// timerQueue implements heap.Interface ordered by (deadline, seq).
type timerQueue []*frameTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*frameTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// seconds converts a float64 second count to a Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
