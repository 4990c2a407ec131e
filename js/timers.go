package js

import (
	"slices"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// timer is a callback scheduled by setTimeout or setInterval.
type timer struct {
	id       int
	callback goja.Callable
	args     []goja.Value
	dueTime  time.Time
	interval time.Duration // 0 for setTimeout
}

// timerManager keeps the scheduled timers of one Runtime.
type timerManager struct {
	mu     sync.Mutex
	timers map[int]*timer
	nextID int
	now    func() time.Time
}

func newTimerManager() *timerManager {
	return &timerManager{
		timers: make(map[int]*timer),
		nextID: 1,
		now:    time.Now,
	}
}

func (tm *timerManager) setTimeout(callback goja.Callable, delay time.Duration, args []goja.Value) int {
	return tm.add(callback, delay, 0, args)
}

func (tm *timerManager) setInterval(callback goja.Callable, interval time.Duration, args []goja.Value) int {
	return tm.add(callback, interval, interval, args)
}

func (tm *timerManager) add(callback goja.Callable, delay, interval time.Duration, args []goja.Value) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tm.nextID
	tm.nextID++
	tm.timers[id] = &timer{
		id:       id,
		callback: callback,
		args:     args,
		dueTime:  tm.now().Add(delay),
		interval: interval,
	}
	return id
}

func (tm *timerManager) clearTimer(id int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	delete(tm.timers, id)
}

// due returns the timers whose due time has passed, ordered by due time
// and then by creation.
func (tm *timerManager) due() []*timer {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := tm.now()
	var due []*timer
	for _, t := range tm.timers {
		if !t.dueTime.After(now) {
			due = append(due, t)
		}
	}
	slices.SortFunc(due, func(a, b *timer) int {
		if c := a.dueTime.Compare(b.dueTime); c != 0 {
			return c
		}
		return a.id - b.id
	})
	return due
}

// process runs every due timer once. A timer cleared by an earlier callback
// in the same pass is skipped.
func (tm *timerManager) process(r *Runtime) {
	for _, t := range tm.due() {
		if !tm.active(t) {
			continue
		}

		_, _ = r.call(t.callback, goja.Undefined(), t.args...)

		tm.mu.Lock()
		if _, ok := tm.timers[t.id]; ok {
			if t.interval > 0 {
				t.dueTime = tm.now().Add(t.interval)
			} else {
				delete(tm.timers, t.id)
			}
		}
		tm.mu.Unlock()
	}
}

func (tm *timerManager) active(t *timer) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	_, ok := tm.timers[t.id]
	return ok
}

func (tm *timerManager) hasPending() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.timers) > 0
}

// nextDueTime returns the time until the next timer is due, or 0 when no
// timer is pending or one is already due.
func (tm *timerManager) nextDueTime() time.Duration {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := tm.now()
	var next time.Duration = -1
	for _, t := range tm.timers {
		d := t.dueTime.Sub(now)
		if d <= 0 {
			return 0
		}
		if next < 0 || d < next {
			next = d
		}
	}
	if next < 0 {
		return 0
	}
	return next
}
