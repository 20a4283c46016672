// Package clock is the shared simulation clock. Every delayed or repeating
// callback in a scene is a Task owned by one Clock, so a scene can pause all
// of them at once and cancel all of them on teardown.
package clock

import "container/heap"

// Task is a handle to a scheduled callback.
type Task struct {
	id        uint64
	due       float64
	interval  float64
	fn        func()
	cancelled bool
	index     int
}

// Cancel stops the task from firing again. Safe on nil and on tasks that
// already fired.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the task can still fire.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled
}

// Due returns the clock time of the next firing.
func (t *Task) Due() float64 {
	if t == nil {
		return 0
	}
	return t.due
}

// Clock advances in milliseconds. It is not safe for concurrent use.
type Clock struct {
	now       float64
	paused    bool
	advancing bool
	seq       uint64
	queue     taskQueue
	pending   []*Task
}

// New returns a clock starting at zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the current simulation time. Inside a callback it equals the
// callback's due time. A task scheduled from a callback fires on the next
// Advance, so its callback can see a Now earlier than the previous Advance
// ended at. Between Advance calls Now only moves forward.
func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// After schedules fn once, delay milliseconds from now.
func (c *Clock) After(delay float64, fn func()) *Task {
	return c.schedule(delay, 0, fn)
}

// Every schedules fn repeatedly. The first firing is one interval from now.
func (c *Clock) Every(interval float64, fn func()) *Task {
	if interval <= 0 {
		interval = 1
	}
	return c.schedule(interval, interval, fn)
}

func (c *Clock) schedule(delay, interval float64, fn func()) *Task {
	if c == nil || fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	c.seq++
	t := &Task{id: c.seq, due: c.now + delay, interval: interval, fn: fn, index: -1}
	if c.advancing {
		// Tasks created from a callback wait for the next Advance.
		c.pending = append(c.pending, t)
		return t
	}
	heap.Push(&c.queue, t)
	return t
}

// Advance moves time forward by dt and fires every due task in (due, creation)
// order. Repeating tasks may fire several times when dt spans several
// intervals. A paused clock does not move.
func (c *Clock) Advance(dt float64) {
	if c == nil || c.paused || dt < 0 {
		return
	}
	target := c.now + dt
	c.advancing = true
	for c.queue.Len() > 0 {
		next := c.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&c.queue)
		if next.cancelled {
			continue
		}
		c.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.cancelled = true
		}
		next.fn()
		if c.paused {
			// A callback paused the clock; leave the remaining tasks queued.
			if next.interval > 0 && !next.cancelled {
				heap.Push(&c.queue, next)
			}
			target = c.now
			break
		}
		if next.interval > 0 && !next.cancelled {
			heap.Push(&c.queue, next)
		}
	}
	c.now = target
	c.advancing = false
	for _, t := range c.pending {
		if !t.cancelled {
			heap.Push(&c.queue, t)
		}
	}
	c.pending = c.pending[:0]
}

// Pause freezes time and every task.
func (c *Clock) Pause() {
	if c == nil {
		return
	}
	c.paused = true
}

// Resume undoes Pause.
func (c *Clock) Resume() {
	if c == nil {
		return
	}
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c != nil && c.paused
}

// CancelAll cancels every outstanding task. Used on scene teardown.
func (c *Clock) CancelAll() {
	if c == nil {
		return
	}
	for _, t := range c.queue {
		t.cancelled = true
	}
	for _, t := range c.pending {
		t.cancelled = true
	}
	c.queue = c.queue[:0]
	c.pending = c.pending[:0]
}

// Len returns the number of tasks still able to fire.
func (c *Clock) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, t := range c.queue {
		if !t.cancelled {
			n++
		}
	}
	for _, t := range c.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].id < q[j].id
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
