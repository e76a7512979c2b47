// Package sched provides a single-threaded cooperative task scheduler.
//
// Game time only moves when Tick is called. Timed waits, repeating pulses
// and per-frame interpolations are expressed as tasks that the owner of
// the scheduler advances from its own loop, so no task ever runs
// concurrently with game state mutations.
package sched

import "time"

type taskKind int

const (
	kindTimer taskKind = iota
	kindRepeat
	kindTween
)

// Task is a handle to a scheduled unit of work.
type Task struct {
	kind     taskKind
	start    time.Duration
	due      time.Duration
	interval time.Duration
	duration time.Duration

	fn     func()
	update func(progress float64)
	done   func()

	canceled bool
	finished bool
}

// Cancel stops the task. Cancelling a finished task is a no-op.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.canceled = true
}

// Done reports whether the task has finished or was cancelled.
func (t *Task) Done() bool {
	return t == nil || t.finished || t.canceled
}

// Scheduler runs tasks against a manually advanced game clock.
type Scheduler struct {
	now     time.Duration
	tasks   []*Task
	pending []*Task
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed game time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of live tasks, including ones that start next tick.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Done() {
			n++
		}
	}
	for _, t := range s.pending {
		if !t.Done() {
			n++
		}
	}
	return n
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.add(&Task{kind: kindTimer, start: s.now, due: s.now + d, fn: fn})
}

// Every runs fn each interval until the task is cancelled.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(&Task{kind: kindRepeat, start: s.now, due: s.now + interval, interval: interval, fn: fn})
}

// Tween calls update once per tick with the normalized progress in [0, 1]
// for duration d, then calls done. Update always sees a final call with 1.
func (s *Scheduler) Tween(d time.Duration, update func(progress float64), done func()) *Task {
	return s.add(&Task{kind: kindTween, start: s.now, due: s.now + d, duration: d, update: update, done: done})
}

func (s *Scheduler) add(t *Task) *Task {
	s.pending = append(s.pending, t)
	return t
}

// Tick advances game time by dt and runs every task that is due.
// Tasks created while ticking are picked up on the following tick.
func (s *Scheduler) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	s.tasks = append(s.tasks, s.pending...)
	s.pending = nil

	for _, t := range s.tasks {
		if t.Done() {
			continue
		}
		s.step(t)
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

func (s *Scheduler) step(t *Task) {
	switch t.kind {
	case kindTimer:
		if s.now >= t.due {
			t.finished = true
			if t.fn != nil {
				t.fn()
			}
		}
	case kindRepeat:
		for s.now >= t.due && !t.canceled {
			t.due += t.interval
			if t.fn != nil {
				t.fn()
			}
		}
	case kindTween:
		progress := 1.0
		if t.duration > 0 {
			progress = float64(s.now-t.start) / float64(t.duration)
			if progress > 1 {
				progress = 1
			}
		}
		if t.update != nil {
			t.update(progress)
		}
		if progress >= 1 && !t.canceled {
			t.finished = true
			if t.done != nil {
				t.done()
			}
		}
	}
}

// Advance ticks in fixed steps until total game time has elapsed.
func (s *Scheduler) Advance(total, step time.Duration) {
	if step <= 0 {
		step = total
	}
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		dt := step
		if total-elapsed < step {
			dt = total - elapsed
		}
		s.Tick(dt)
	}
}
