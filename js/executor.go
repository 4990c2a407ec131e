package js

import (
	"context"
	"log/slog"
	"strings"

	"github.com/chrisuehlinger/scriptdom/binding"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/internal/logging"
)

// ScriptExecutor runs the scripts of a document and dispatches inline event
// handlers.
type ScriptExecutor struct {
	runtime         *Runtime
	binder          *Binder
	context         *Context
	logger          *slog.Logger
	currentDocument *dom.Document
}

// NewScriptExecutor creates a script executor. A nil registry gets a fresh
// one that also reads Go accessors as properties, and a nil logger discards
// output.
func NewScriptExecutor(runtime *Runtime, registry *binding.Registry, logger *slog.Logger) *ScriptExecutor {
	if logger == nil {
		logger = logging.NewNop()
	}
	if registry == nil {
		registry = binding.NewRegistry(binding.WithLogger(logger), binding.WithGoAccessors())
	}
	binder := NewBinder(runtime, registry)
	return &ScriptExecutor{
		runtime: runtime,
		binder:  binder,
		context: NewContext(runtime, binder),
		logger:  logger,
	}
}

// Runtime returns the runtime scripts run in.
func (se *ScriptExecutor) Runtime() *Runtime {
	return se.runtime
}

// Binder returns the binder that wraps Go values for scripts.
func (se *ScriptExecutor) Binder() *Binder {
	return se.binder
}

// Context returns the script context used to compile inline handlers.
func (se *ScriptExecutor) Context() *Context {
	return se.context
}

// Document returns the document set by SetupDocument.
func (se *ScriptExecutor) Document() *dom.Document {
	return se.currentDocument
}

// SetupDocument exposes doc to scripts as the document global.
func (se *ScriptExecutor) SetupDocument(doc *dom.Document) error {
	registry := se.binder.Registry()
	for _, sample := range []any{doc, (*dom.Element)(nil), (*dom.Node)(nil), (*dom.Attr)(nil), (*Event)(nil)} {
		registry.Register(sample)
	}

	se.currentDocument = doc
	return se.runtime.Set("document", se.binder.Wrap(doc))
}

// ExecuteScripts runs every inline script element of doc in document order.
// A failing script does not stop the ones after it; all errors are returned.
func (se *ScriptExecutor) ExecuteScripts(doc *dom.Document) []error {
	var errors []error
	for _, script := range doc.GetElementsByTagName("script") {
		if err := se.executeScript(script); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

// executeScript executes a single script element.
func (se *ScriptExecutor) executeScript(script *dom.Element) error {
	scriptType := strings.ToLower(strings.TrimSpace(script.GetAttribute("type")))
	if scriptType != "" && scriptType != "text/javascript" && scriptType != "application/javascript" {
		se.logger.Debug("skipping script", "type", scriptType)
		return nil
	}

	// External scripts are not fetched.
	if script.HasAttribute("src") {
		se.logger.Debug("skipping external script", "src", script.GetAttribute("src"))
		return nil
	}

	code := strings.TrimSpace(script.TextContent())
	if code == "" {
		return nil
	}

	id := script.ID()
	if id == "" {
		id = "inline"
	}
	return se.runtime.ExecuteScript(code, id)
}

// DispatchEvent runs the inline on<eventType> handler of el, if any, with a
// new Event. It reports false when the handler returned false or called
// preventDefault. The handler is compiled on first dispatch; a compile or
// runtime error is returned and does not cancel the event.
func (se *ScriptExecutor) DispatchEvent(el *dom.Element, eventType string) (bool, error) {
	attr := "on" + strings.ToLower(eventType)
	h, err := el.EventHandler(attr).GetHandler(se.context)
	if err != nil {
		se.logger.Warn("inline handler failed to compile",
			"element", el.TagName(), "attribute", attr, "error", err)
		return true, err
	}
	if h == nil {
		return true, nil
	}

	event := NewEvent(eventType, el)
	event.phase = EventPhaseAtTarget
	result, err := h.Invoke(event)
	event.phase = EventPhaseNone
	if err != nil {
		return true, err
	}
	if b, ok := result.(bool); ok && !b {
		event.PreventDefault()
	}
	return !event.DefaultPrevented(), nil
}

// Click dispatches a click event to el and, unless it was canceled, performs
// the element's default click action.
func (se *ScriptExecutor) Click(el *dom.Element) (bool, error) {
	proceed, err := se.DispatchEvent(el, "click")
	if proceed {
		el.Click()
	}
	return proceed, err
}

// RunEventLoop runs pending timers and microtasks until there is no more
// work or ctx is done.
func (se *ScriptExecutor) RunEventLoop(ctx context.Context) error {
	return se.runtime.RunEventLoop(ctx)
}

// Cleanup clears caches and releases resources.
func (se *ScriptExecutor) Cleanup() {
	se.binder.ClearCache()
	se.runtime.ClearErrors()
}
