// Package js runs page scripts against a dom tree using the goja
// JavaScript engine (pure Go ES5.1+ implementation). Go values reach
// scripts through a Binder, which resolves property reads, writes and calls
// by name with a binding.Registry.
package js

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chrisuehlinger/scriptdom/internal/logging"
	"github.com/dop251/goja"
)

// Runtime wraps a goja JavaScript runtime. Running script code holds the
// runtime lock, so scripts, compiled handlers and the event loop never run
// at the same time.
type Runtime struct {
	vm        *goja.Runtime
	logger    *slog.Logger
	timers    *timerManager
	eventLoop *eventLoop
	mu        sync.Mutex
	errors    []error
	onError   func(error)
}

// NewRuntime creates a new JavaScript runtime. A nil logger discards
// console output.
func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runtime{
		vm:        goja.New(),
		logger:    logger,
		timers:    newTimerManager(),
		eventLoop: newEventLoop(),
	}

	r.setupConsole()
	r.setupTimers()
	r.setupWindow()

	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Set defines a global variable.
func (r *Runtime) Set(name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm.Set(name, value)
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// goja can panic on some malformed input.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs the code of one script element. Scripts
// are compiled in sloppy mode unless they carry a "use strict" directive.
// The src name is used in error positions.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	if _, err = r.vm.RunProgram(program); err != nil {
		r.recordError(err)
	}
	return err
}

// call invokes a script function with the runtime lock held.
func (r *Runtime) call(fn goja.Callable, this goja.Value, args ...goja.Value) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script callback panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = fn(this, args...)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// recordError must be called with r.mu held.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Warn("script error", "error", err)
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// RunEventLoopOnce drains the microtask queue and runs the timers that are
// due. It reports whether work is still pending.
func (r *Runtime) RunEventLoopOnce() bool {
	return r.eventLoop.runOnce(r)
}

// HasPendingWork returns true if there are timers or callbacks waiting.
func (r *Runtime) HasPendingWork() bool {
	return r.timers.hasPending() || r.eventLoop.hasPending()
}

// RunEventLoop runs queued callbacks and timers until none remain or ctx is
// done. Between timers it sleeps until the next one is due.
func (r *Runtime) RunEventLoop(ctx context.Context) error {
	for r.RunEventLoopOnce() {
		wait := r.timers.nextDueTime()
		if wait <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// setupConsole creates the console object. Output goes to the logger: log,
// info and debug at their own level, warn and error at warn and error.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	levels := map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"trace": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for method, level := range levels {
		console.Set(method, func(call goja.FunctionCall) goja.Value {
			r.logger.Log(context.Background(), level, formatArgs(call.Arguments), "source", "console."+method)
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			r.logger.Error(msg, "source", "console.assert")
		}
		return goja.Undefined()
	})

	counts := make(map[string]int)
	console.Set("count", func(call goja.FunctionCall) goja.Value {
		label := "default"
		if len(call.Arguments) > 0 {
			label = call.Arguments[0].String()
		}
		counts[label]++
		r.logger.Info(fmt.Sprintf("%s: %d", label, counts[label]), "source", "console.count")
		return goja.Undefined()
	})

	console.Set("countReset", func(call goja.FunctionCall) goja.Value {
		label := "default"
		if len(call.Arguments) > 0 {
			label = call.Arguments[0].String()
		}
		delete(counts, label)
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupTimers creates setTimeout, setInterval, clearTimeout, clearInterval
// and queueMicrotask.
func (r *Runtime) setupTimers() {
	schedule := func(repeat bool) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 1 {
				return goja.Undefined()
			}
			callback, ok := goja.AssertFunction(call.Arguments[0])
			if !ok {
				return goja.Undefined()
			}

			delay := int64(0)
			if len(call.Arguments) > 1 {
				delay = call.Arguments[1].ToInteger()
			}
			if delay < 0 {
				delay = 0
			}
			// Browsers clamp intervals to 4ms.
			if repeat && delay < 4 {
				delay = 4
			}

			var args []goja.Value
			if len(call.Arguments) > 2 {
				args = call.Arguments[2:]
			}

			d := time.Duration(delay) * time.Millisecond
			if repeat {
				return r.vm.ToValue(r.timers.setInterval(callback, d, args))
			}
			return r.vm.ToValue(r.timers.setTimeout(callback, d, args))
		}
	}
	cancel := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			r.timers.clearTimer(int(call.Arguments[0].ToInteger()))
		}
		return goja.Undefined()
	}

	r.vm.Set("setTimeout", schedule(false))
	r.vm.Set("setInterval", schedule(true))
	r.vm.Set("clearTimeout", cancel)
	r.vm.Set("clearInterval", cancel)

	r.vm.Set("queueMicrotask", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			return goja.Undefined()
		}
		r.eventLoop.queueMicrotask(callback, nil)
		return goja.Undefined()
	})
}

// setupWindow makes window, self and globalThis refer to the global object
// so that properties set on window are available globally.
func (r *Runtime) setupWindow() {
	window := r.vm.GlobalObject()
	r.vm.Set("window", window)
	r.vm.Set("self", window)
	r.vm.Set("globalThis", window)

	window.Set("alert", func(call goja.FunctionCall) goja.Value {
		r.logger.Info(formatArgs(call.Arguments), "source", "alert")
		return goja.Undefined()
	})
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
