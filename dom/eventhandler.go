package dom

import (
	"strings"

	"github.com/google/uuid"
)

// ScriptContext compiles inline handler source into an invocable function.
// It is the capability through which a scripting engine is reached; callers
// pass the active context explicitly, or nil when no engine is available.
type ScriptContext interface {
	// CompileFunction compiles source as the body of an anonymous function
	// named name, whose receiver is this.
	CompileFunction(name, source string, this *Element) (Handler, error)
}

// Handler is a compiled inline event handler.
type Handler interface {
	// Name returns the synthetic function name given at compilation.
	Name() string
	// Invoke calls the handler with the given arguments.
	Invoke(args ...any) (any, error)
}

// AttributeEventHandler lazily compiles the script text of an inline event
// attribute (such as onclick) and caches the result.
type AttributeEventHandler struct {
	element  *Element
	attrName string
	handler  Handler
}

// EventHandler returns the handler slot for the named attribute. The same
// slot is returned for every call with the same name.
func (e *Element) EventHandler(attrName string) *AttributeEventHandler {
	data := e.AsNode().elementData
	if data.handlers == nil {
		data.handlers = make(map[string]*AttributeEventHandler)
	}
	h, ok := data.handlers[attrName]
	if !ok {
		h = &AttributeEventHandler{element: e, attrName: attrName}
		data.handlers[attrName] = h
	}
	return h
}

// Element returns the element that owns the handler attribute.
func (h *AttributeEventHandler) Element() *Element {
	return h.element
}

// AttributeName returns the name of the attribute carrying the script text.
func (h *AttributeEventHandler) AttributeName() string {
	return h.attrName
}

// Compiled reports whether a handler has been compiled and cached.
func (h *AttributeEventHandler) Compiled() bool {
	return h.handler != nil
}

// GetHandler returns the compiled handler, compiling it on first use.
// It returns nil when the attribute is absent, and nil without caching when
// ctx is nil so that a later call can compile once a context is available.
// Compilation errors are returned and not cached.
func (h *AttributeEventHandler) GetHandler(ctx ScriptContext) (Handler, error) {
	if h.handler != nil {
		return h.handler, nil
	}
	source, ok := h.element.GetAttributeWithNoDefault(h.attrName)
	if !ok {
		return nil, nil
	}
	if ctx == nil {
		return nil, nil
	}
	handler, err := ctx.CompileFunction(h.functionName(), source, h.element)
	if err != nil {
		return nil, err
	}
	h.handler = handler
	return handler, nil
}

// functionName builds a name that is unique per compilation so that
// handlers never collide in the engine's namespace.
func (h *AttributeEventHandler) functionName() string {
	prefix := DefaultHandlerPrefix
	if doc := h.element.OwnerDocument(); doc != nil {
		prefix = doc.HandlerPrefix()
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return identifier(prefix) + "_" + identifier(h.attrName) + "_" + id
}

// identifier replaces every character that is not valid in a script
// identifier with an underscore.
func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
			return r
		default:
			return '_'
		}
	}, s)
}
