package js

import (
	"errors"
	"reflect"
	"sync"

	"github.com/chrisuehlinger/scriptdom/binding"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/dop251/goja"
)

// ScriptHandleProvider is implemented by values that hand scripts a
// different object than themselves, such as a dom.Node that is really an
// element.
type ScriptHandleProvider interface {
	ScriptHandle() any
}

// Binder exposes Go values to scripts. Each pointer is wrapped once, so a
// value keeps its identity on the script side. Property reads, writes and
// method calls on a wrapper are resolved by name through the registry.
type Binder struct {
	runtime  *Runtime
	registry *binding.Registry

	mu      sync.Mutex
	objects map[any]*goja.Object
}

// NewBinder creates a binder for the runtime's VM.
func NewBinder(runtime *Runtime, registry *binding.Registry) *Binder {
	return &Binder{
		runtime:  runtime,
		registry: registry,
		objects:  make(map[any]*goja.Object),
	}
}

// Registry returns the binding registry used for name resolution.
func (b *Binder) Registry() *binding.Registry {
	return b.registry
}

// Wrap returns the script object for target, creating it on first use.
// Wrap returns nil for a nil target.
func (b *Binder) Wrap(target any) *goja.Object {
	if isNil(target) {
		return nil
	}
	if p, ok := target.(ScriptHandleProvider); ok {
		target = p.ScriptHandle()
		if isNil(target) {
			return nil
		}
	}

	bo := &boundObject{binder: b, target: target}
	if reflect.ValueOf(target).Kind() != reflect.Pointer {
		return b.runtime.vm.NewDynamicObject(bo)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if obj, ok := b.objects[target]; ok {
		return obj
	}
	obj := b.runtime.vm.NewDynamicObject(bo)
	b.objects[target] = obj
	return obj
}

// Unwrap returns the Go value behind a wrapper created by Wrap.
func (b *Binder) Unwrap(v goja.Value) (any, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	bo, ok := obj.Export().(*boundObject)
	if !ok {
		return nil, false
	}
	return bo.target, true
}

// ClearCache drops every wrapper, so the next Wrap of a value creates a new
// script object.
func (b *Binder) ClearCache() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects = make(map[any]*goja.Object)
}

// ToValue converts a Go value for use by scripts. Scalars and strings map to
// script primitives, slices to arrays (a nil slice to an empty one), nil
// pointers to null, and other pointers and structs to wrappers.
func (b *Binder) ToValue(v any) goja.Value {
	vm := b.runtime.vm
	if v == nil {
		return goja.Null()
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Slice && isNil(v) {
		return goja.Null()
	}
	switch t := v.(type) {
	case goja.Value:
		return t
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return vm.ToValue(t)
	case error:
		return vm.ToValue(t.Error())
	case ScriptHandleProvider:
		return b.wrapValue(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = b.ToValue(rv.Index(i).Interface())
		}
		return vm.NewArray(items...)
	case reflect.Pointer, reflect.Struct:
		return b.wrapValue(v)
	// Named scalar types such as dom.NodeType read as their underlying
	// primitive.
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return vm.ToValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return vm.ToValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return vm.ToValue(rv.Float())
	case reflect.String:
		return vm.ToValue(rv.String())
	case reflect.Bool:
		return vm.ToValue(rv.Bool())
	}
	return vm.ToValue(v)
}

func (b *Binder) wrapValue(v any) goja.Value {
	if obj := b.Wrap(v); obj != nil {
		return obj
	}
	return goja.Null()
}

// Export converts a script value for a Go call. Wrappers unwrap to their
// Go value and undefined and null become nil.
func (b *Binder) Export(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if target, ok := b.Unwrap(v); ok {
		return target
	}
	return v.Export()
}

// function turns a bound method into a script function. An error result is
// thrown: a dom.DOMError as a DOMException-like object, anything else as a
// Go error.
func (b *Binder) function(f *binding.Function) goja.Value {
	vm := b.runtime.vm
	return vm.ToValue(func(call goja.FunctionCall) goja.Value {
		args := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = b.Export(arg)
		}
		results, err := f.Call(args...)
		if err != nil {
			var domErr *dom.DOMError
			if errors.As(err, &domErr) {
				panic(b.domException(domErr))
			}
			panic(vm.NewGoError(err))
		}
		switch len(results) {
		case 0:
			return goja.Undefined()
		case 1:
			return b.ToValue(results[0])
		default:
			return b.ToValue(results)
		}
	})
}

// domException builds the object thrown for a DOM error.
func (b *Binder) domException(err *dom.DOMError) *goja.Object {
	exc := b.runtime.vm.NewObject()
	exc.Set("name", err.Name)
	exc.Set("message", err.Message)
	exc.Set("code", domExceptionCode(err.Name))
	exc.Set("toString", func(goja.FunctionCall) goja.Value {
		return b.runtime.vm.ToValue(err.Error())
	})
	return exc
}

// domExceptionCode returns the legacy exception code for a DOMException name.
func domExceptionCode(name string) int {
	switch name {
	case dom.HierarchyRequestErr:
		return 3
	case dom.WrongDocumentErr:
		return 4
	case dom.InvalidCharacterErr:
		return 5
	case dom.NotFoundErr:
		return 8
	case dom.NotSupportedErr:
		return 9
	case dom.InUseAttributeErr:
		return 10
	case dom.InvalidStateErr:
		return 11
	default:
		return 0
	}
}

// boundObject is the goja.DynamicObject behind every wrapper.
type boundObject struct {
	binder *Binder
	target any
}

// Get resolves a property read. A nil result falls through to the
// prototype chain.
func (o *boundObject) Get(key string) goja.Value {
	lookup := o.binder.registry.GetNamedProperty(o.target, key)
	switch lookup.Kind {
	case binding.KindProperty:
		return o.binder.ToValue(lookup.Value)
	case binding.KindFunction:
		return o.binder.function(lookup.Function)
	}
	return nil
}

// Set resolves a property write. Writes that find no compatible setter are
// dropped.
func (o *boundObject) Set(key string, val goja.Value) bool {
	o.binder.registry.SetNamedProperty(o.target, key, o.binder.Export(val))
	return true
}

// Has resolves the name without calling any getter.
func (o *boundObject) Has(key string) bool {
	return o.binder.registry.HasNamedProperty(o.target, key)
}

func (o *boundObject) Delete(key string) bool {
	return false
}

// Keys lists the readable properties. Methods are not enumerable.
func (o *boundObject) Keys() []string {
	return o.binder.registry.PropertyNames(o.target)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
