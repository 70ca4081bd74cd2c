// Package sched provides a frame-driven one-shot task scheduler.
//
// Scene logic uses it for timed effects (invincibility windows, recoil, hit
// effect lifetime) instead of background goroutines, so every effect runs on
// the tick loop in a deterministic order.
package sched

import (
	"container/heap"
)

// Func is a scheduled callback.
type Func func()

// Handle identifies a scheduled task and can cancel it.
type Handle struct {
	id uint64
	s  *Scheduler
}

// Cancel prevents the task from running. Cancelling a fired task is a no-op.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	h.s.cancel(h.id)
}

type task struct {
	at  float64
	seq uint64
	fn  Func
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler runs callbacks once their due time is reached on the scene clock.
// Tasks due in the same Tick run in due-time order, ties in scheduling order.
type Scheduler struct {
	now       float64
	seq       uint64
	queue     taskQueue
	cancelled map[uint64]struct{}
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{
		cancelled: make(map[uint64]struct{}),
	}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run delay seconds from now.
// A non-positive delay runs it on the next Tick.
func (s *Scheduler) After(delay float64, fn Func) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.queue, &task{at: s.now + delay, seq: s.seq, fn: fn})
	return Handle{id: s.seq, s: s}
}

// Tick advances the clock by dt and runs every task now due.
// Tasks scheduled by a running callback with zero delay run in the same Tick.
// Returns the number of tasks run.
func (s *Scheduler) Tick(dt float64) int {
	if dt > 0 {
		s.now += dt
	}

	ran := 0
	for s.queue.Len() > 0 && s.queue[0].at <= s.now {
		t := heap.Pop(&s.queue).(*task)
		if _, ok := s.cancelled[t.seq]; ok {
			delete(s.cancelled, t.seq)
			continue
		}
		if t.fn != nil {
			t.fn()
		}
		ran++
	}
	return ran
}

// Len returns the number of pending tasks, cancelled ones excluded.
func (s *Scheduler) Len() int {
	return s.queue.Len() - len(s.cancelled)
}

// Clear drops every pending task without running it.
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
	clear(s.cancelled)
}

// Reset clears pending tasks and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.Clear()
	s.now = 0
}

func (s *Scheduler) cancel(id uint64) {
	for _, t := range s.queue {
		if t.seq == id {
			s.cancelled[id] = struct{}{}
			return
		}
	}
}
