package js

import (
	"sync"

	"github.com/dop251/goja"
)

// task is a queued callback.
type task struct {
	callback goja.Callable
	args     []goja.Value
}

// eventLoop holds the microtask queue of one Runtime. Timers are kept by
// the timerManager and run after the microtasks on every turn.
type eventLoop struct {
	mu         sync.Mutex
	microtasks []task
}

func newEventLoop() *eventLoop {
	return &eventLoop{}
}

// queueMicrotask adds a microtask to the queue.
func (el *eventLoop) queueMicrotask(callback goja.Callable, args []goja.Value) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.microtasks = append(el.microtasks, task{callback: callback, args: args})
}

func (el *eventLoop) next() (task, bool) {
	el.mu.Lock()
	defer el.mu.Unlock()
	if len(el.microtasks) == 0 {
		return task{}, false
	}
	t := el.microtasks[0]
	el.microtasks = el.microtasks[1:]
	return t, true
}

// runOnce drains all microtasks, including ones queued while draining, then
// runs the due timers. It returns true if more work is pending.
func (el *eventLoop) runOnce(r *Runtime) bool {
	for {
		t, ok := el.next()
		if !ok {
			break
		}
		_, _ = r.call(t.callback, goja.Undefined(), t.args...)
	}

	r.timers.process(r)

	return el.hasPending() || r.timers.hasPending()
}

func (el *eventLoop) hasPending() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.microtasks) > 0
}
