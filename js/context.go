package js

import (
	"fmt"

	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/dop251/goja"
)

// Context compiles inline event handler source for a Runtime. It is the
// dom.ScriptContext handed to AttributeEventHandler.GetHandler.
type Context struct {
	runtime *Runtime
	binder  *Binder
}

var _ dom.ScriptContext = (*Context)(nil)

// NewContext creates a script context. Handler receivers are wrapped with
// binder.
func NewContext(runtime *Runtime, binder *Binder) *Context {
	return &Context{runtime: runtime, binder: binder}
}

// CompileFunction compiles source as the body of a function named name that
// takes a single event parameter. The returned handler is invoked with
// this bound to the element.
func (c *Context) CompileFunction(name, source string, this *dom.Element) (dom.Handler, error) {
	code := fmt.Sprintf("(function %s(event) {\n%s\n})", name, source)

	c.runtime.mu.Lock()
	defer c.runtime.mu.Unlock()

	program, err := goja.Compile(name, code, false)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	value, err := c.runtime.vm.RunProgram(program)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, fmt.Errorf("compile %s: not a function", name)
	}

	var receiver goja.Value = goja.Undefined()
	if this != nil {
		receiver = c.binder.Wrap(this)
	}
	return &handler{name: name, fn: fn, this: receiver, ctx: c}, nil
}

// handler is a compiled inline event handler.
type handler struct {
	name string
	fn   goja.Callable
	this goja.Value
	ctx  *Context
}

func (h *handler) Name() string {
	return h.name
}

// Invoke calls the handler. Arguments are converted with the binder and the
// result is exported back to Go; a handler that returns nothing yields nil.
func (h *handler) Invoke(args ...any) (any, error) {
	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = h.ctx.binder.ToValue(arg)
	}
	result, err := h.ctx.runtime.call(h.fn, h.this, values...)
	if err != nil {
		return nil, err
	}
	if result == nil || goja.IsUndefined(result) {
		return nil, nil
	}
	return h.ctx.binder.Export(result), nil
}
