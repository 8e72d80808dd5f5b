package tiltcard

import (
	"container/heap"
	"time"
)

// Scheduler is a virtual-time timer queue. Time only moves when Advance is
// called, normally once per tick from Card.Update, so every callback runs on
// the caller's goroutine. Not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	queue timerQueue
	seq   uint64
}

// Timer is a pending callback returned by After and Every.
type Timer struct {
	s        *Scheduler
	fn       func()
	due      time.Duration
	interval time.Duration // > 0 for periodic timers
	seq      uint64
	index    int // heap index, -1 when not queued
	stopped  bool
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After schedules fn to run once, delay after the current time.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{s: s, fn: fn, due: s.now + delay}
	s.push(t)
	return t
}

// Every schedules fn to run every interval, the first run one interval from
// now. Panics if interval is not positive.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		panic("tiltcard: periodic timer interval must be positive")
	}
	t := &Timer{s: s, fn: fn, due: s.now + interval, interval: interval}
	s.push(t)
	return t
}

// Advance moves virtual time forward by d and runs every timer that falls
// due, in due-time order. Timers due at the same instant run in the order
// they were scheduled. Timers scheduled by a callback run in the same
// Advance if they fall due within it.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*Timer)
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
			s.push(t)
		}
		t.fn()
	}
	s.now = target
}

// Stop cancels the timer. It returns false if the timer already fired (for
// one-shot timers) or was already stopped; stopping is always safe.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.s.queue, t.index)
	return true
}

func (s *Scheduler) push(t *Timer) {
	s.seq++
	t.seq = s.seq
	heap.Push(&s.queue, t)
}

// timerQueue is a min-heap ordered by due time, then scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
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
