// Package binding resolves named properties and functions on arbitrary Go
// values through reflection, so that a dynamically typed caller can read,
// write and invoke them by name.
//
// Resolutions are memoized per (type, name) in a Registry. A failed
// resolution is cached as well, and binding failures are never returned as
// errors: a missing or failing getter reads as KindNotFound and a missing or
// failing setter is a silent no-op reported through SetResult.
package binding

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/chrisuehlinger/scriptdom/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Kind classifies the result of GetNamedProperty.
type Kind uint8

const (
	KindNotFound Kind = iota
	KindProperty
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindFunction:
		return "function"
	default:
		return "not_found"
	}
}

// Lookup is the result of GetNamedProperty. Value is set for KindProperty
// and Function for KindFunction.
type Lookup struct {
	Kind     Kind
	Value    any
	Function *Function
}

// Found reports whether the name resolved to a property or a function.
func (l Lookup) Found() bool {
	return l.Kind != KindNotFound
}

// SetResult is the outcome of SetNamedProperty.
type SetResult uint8

const (
	// SetApplied means the setter ran.
	SetApplied SetResult = iota
	// SetNoSetter means no compatible setter is cached for the name.
	SetNoSetter
	// SetFailed means a setter exists but the value could not be converted,
	// or the setter returned an error or panicked.
	SetFailed
)

func (r SetResult) String() string {
	switch r {
	case SetApplied:
		return "applied"
	case SetNoSetter:
		return "no_setter"
	default:
		return "failed"
	}
}

type getter struct {
	method reflect.Method
	found  bool
}

type setter struct {
	method reflect.Method
	found  bool
}

type function struct {
	method reflect.Method
	found  bool
}

// typeEntry is the capability table of one dynamic type: its method set
// plus the memoized resolutions, keyed by lower-cased name.
type typeEntry struct {
	methods   []reflect.Method
	getters   map[string]getter
	functions map[string]function
	setters   map[string]setter
}

// Registry memoizes property, setter and function resolutions per
// (type, name). It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*typeEntry

	logger      *slog.Logger
	goAccessors bool
	scans       atomic.Int64
	scanFn      prometheus.CounterFunc
	lookups     *prometheus.CounterVec
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report swallowed binding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGoAccessors also resolves a method named <Name> itself as a getter,
// so Go accessors such as TagName read as properties. Only methods returning
// a single non-error value qualify, and Has<Name> predicates stay functions.
func WithGoAccessors() Option {
	return func(r *Registry) {
		r.goAccessors = true
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		types:  make(map[reflect.Type]*typeEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.scanFn = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "scriptdom",
		Subsystem: "binding",
		Name:      "method_scans_total",
		Help:      "Number of method-set scans performed to resolve a (type, name) pair",
	}, func() float64 { return float64(r.scans.Load()) })
	r.lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scriptdom",
		Subsystem: "binding",
		Name:      "lookups_total",
		Help:      "Number of named property lookups by operation and result",
	}, []string{"op", "result"})
	return r
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	r.scanFn.Describe(ch)
	r.lookups.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.scanFn.Collect(ch)
	r.lookups.Collect(ch)
}

// ScanCount returns how many method-set scans have been performed. A
// memoized resolution does not scan.
func (r *Registry) ScanCount() int64 {
	return r.scans.Load()
}

// Register builds the capability table for the dynamic type of sample ahead
// of the first lookup.
func (r *Registry) Register(sample any) {
	if t := reflect.TypeOf(sample); t != nil {
		r.mu.Lock()
		r.entryLocked(t)
		r.mu.Unlock()
	}
}

// Registered reports whether a capability table exists for the dynamic type
// of sample.
func (r *Registry) Registered(sample any) bool {
	t := reflect.TypeOf(sample)
	if t == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[t]
	return ok
}

func (r *Registry) entryLocked(t reflect.Type) *typeEntry {
	if e, ok := r.types[t]; ok {
		return e
	}
	e := &typeEntry{
		methods:   make([]reflect.Method, t.NumMethod()),
		getters:   make(map[string]getter),
		functions: make(map[string]function),
		setters:   make(map[string]setter),
	}
	for i := range e.methods {
		e.methods[i] = t.Method(i)
	}
	r.types[t] = e
	return e
}

// GetNamedProperty resolves name on obj. A getter is a method taking no
// arguments and returning one value, or a value and an error, named
// Is<Name> or Get<Name>; matching ignores case. WithGoAccessors widens this
// to plain accessors named <Name>. A getter that returns an error or panics
// reads as KindNotFound. When no getter exists, any method named <name> is
// returned as a KindFunction.
func (r *Registry) GetNamedProperty(obj any, name string) Lookup {
	recv, ok := receiver(obj)
	if !ok || name == "" {
		r.count("get", KindNotFound.String())
		return Lookup{}
	}
	key := strings.ToLower(name)

	g := r.resolveGetter(recv.Type(), key)
	if g.found {
		value, err := callGetter(recv, g.method)
		if err != nil {
			r.logger.Debug("binding getter failed",
				"type", recv.Type().String(), "name", name, "error", err)
			r.count("get", KindNotFound.String())
			return Lookup{}
		}
		r.count("get", KindProperty.String())
		return Lookup{Kind: KindProperty, Value: value}
	}

	f := r.resolveFunction(recv.Type(), key)
	if f.found {
		r.count("get", KindFunction.String())
		return Lookup{
			Kind:     KindFunction,
			Function: &Function{Name: f.method.Name, recv: recv, method: f.method},
		}
	}

	r.count("get", KindNotFound.String())
	return Lookup{}
}

// HasNamedProperty reports whether name resolves to a getter or a function
// on obj. Nothing is invoked, so a getter that would fail still counts.
func (r *Registry) HasNamedProperty(obj any, name string) bool {
	recv, ok := receiver(obj)
	if !ok || name == "" {
		return false
	}
	key := strings.ToLower(name)
	return r.resolveGetter(recv.Type(), key).found || r.resolveFunction(recv.Type(), key).found
}

// PropertyNames lists the names that read as properties on obj, in
// lowerCamel form and sorted. Functions are not listed.
func (r *Registry) PropertyNames(obj any) []string {
	recv, ok := receiver(obj)
	if !ok {
		return nil
	}
	r.mu.Lock()
	e := r.entryLocked(recv.Type())
	r.mu.Unlock()

	var names []string
	for _, m := range e.methods {
		if !isGetterSignature(m.Type) {
			continue
		}
		if rest, ok := trimAccessorPrefix(m.Name); ok {
			names = append(names, lowerCamel(rest))
		} else if r.isGoAccessor(m) {
			names = append(names, lowerCamel(m.Name))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// SetNamedProperty calls the one-parameter method Set<Name> (ignoring case)
// on obj with value, converting value to the parameter type. The setter is
// resolved once per (type, name) using the runtime type of the first value
// seen: a later value of another type reuses that resolution, including a
// negative one.
func (r *Registry) SetNamedProperty(obj any, name string, value any) SetResult {
	recv, ok := receiver(obj)
	if !ok || name == "" {
		r.count("set", SetNoSetter.String())
		return SetNoSetter
	}

	s := r.resolveSetter(recv.Type(), strings.ToLower(name), reflect.TypeOf(value))
	if !s.found {
		r.count("set", SetNoSetter.String())
		return SetNoSetter
	}

	arg, err := coerce(value, s.method.Type.In(1))
	if err == nil {
		err = callSetter(recv, s.method, arg)
	}
	if err != nil {
		r.logger.Debug("binding setter failed",
			"type", recv.Type().String(), "name", name, "error", err)
		r.count("set", SetFailed.String())
		return SetFailed
	}
	r.count("set", SetApplied.String())
	return SetApplied
}

func (r *Registry) resolveGetter(t reflect.Type, key string) getter {
	r.mu.RLock()
	if e, ok := r.types[t]; ok {
		if g, ok := e.getters[key]; ok {
			r.mu.RUnlock()
			return g
		}
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(t)
	if g, ok := e.getters[key]; ok {
		return g
	}
	r.scans.Add(1)
	var g getter
	for _, prefix := range []string{"is", "get"} {
		for _, m := range e.methods {
			if strings.EqualFold(m.Name, prefix+key) && isGetterSignature(m.Type) {
				g = getter{method: m, found: true}
				break
			}
		}
		if g.found {
			break
		}
	}
	if !g.found && r.goAccessors {
		for _, m := range e.methods {
			if strings.EqualFold(m.Name, key) && r.isGoAccessor(m) {
				g = getter{method: m, found: true}
				break
			}
		}
	}
	e.getters[key] = g
	return g
}

func (r *Registry) resolveFunction(t reflect.Type, key string) function {
	r.mu.RLock()
	if e, ok := r.types[t]; ok {
		if f, ok := e.functions[key]; ok {
			r.mu.RUnlock()
			return f
		}
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(t)
	if f, ok := e.functions[key]; ok {
		return f
	}
	r.scans.Add(1)
	var f function
	for _, m := range e.methods {
		if strings.EqualFold(m.Name, key) {
			f = function{method: m, found: true}
			break
		}
	}
	e.functions[key] = f
	return f
}

func (r *Registry) resolveSetter(t reflect.Type, key string, valueType reflect.Type) setter {
	r.mu.RLock()
	if e, ok := r.types[t]; ok {
		if s, ok := e.setters[key]; ok {
			r.mu.RUnlock()
			return s
		}
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(t)
	if s, ok := e.setters[key]; ok {
		return s
	}
	r.scans.Add(1)
	var s setter
	for _, m := range e.methods {
		if !strings.EqualFold(m.Name, "set"+key) || m.Type.NumIn() != 2 {
			continue
		}
		if compatible(valueType, m.Type.In(1)) {
			s = setter{method: m, found: true}
			break
		}
	}
	e.setters[key] = s
	return s
}

// isGoAccessor reports whether m reads as a plain Go accessor: no
// arguments, one non-error result and not a Has<Name> predicate.
func (r *Registry) isGoAccessor(m reflect.Method) bool {
	if !r.goAccessors || strings.HasPrefix(m.Name, "Has") {
		return false
	}
	return isGetterSignature(m.Type) && m.Type.NumOut() == 1
}

func (r *Registry) count(op, result string) {
	r.lookups.WithLabelValues(op, result).Inc()
}

// receiver returns the reflect.Value of obj, rejecting nil and typed nil
// pointers.
func receiver(obj any) (reflect.Value, bool) {
	if obj == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(obj)
	if nillable(v.Type()) && v.IsNil() {
		return reflect.Value{}, false
	}
	return v, true
}

// isGetterSignature reports whether the method type (receiver included)
// takes no arguments and returns a single value or a value and an error.
func isGetterSignature(mt reflect.Type) bool {
	if mt.NumIn() != 1 || mt.IsVariadic() {
		return false
	}
	switch mt.NumOut() {
	case 1:
		return mt.Out(0) != errorType
	case 2:
		return mt.Out(1) == errorType
	}
	return false
}

// trimAccessorPrefix strips a leading Is or Get from an exported method
// name when a capitalized word follows it.
func trimAccessorPrefix(name string) (string, bool) {
	for _, prefix := range []string{"Is", "Get"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if ok && rest != "" && unicode.IsUpper([]rune(rest)[0]) {
			return rest, true
		}
	}
	return "", false
}

// lowerCamel lowers the leading capital, or a leading acronym, of an
// exported name: ID becomes id, TextContent textContent and HTMLBody
// htmlBody.
func lowerCamel(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func callGetter(recv reflect.Value, m reflect.Method) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	out := m.Func.Call([]reflect.Value{recv})
	if len(out) == 2 {
		if e := out[1].Interface(); e != nil {
			return nil, e.(error)
		}
	}
	return out[0].Interface(), nil
}

func callSetter(recv reflect.Value, m reflect.Method, arg reflect.Value) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	out := m.Func.Call([]reflect.Value{recv, arg})
	if n := len(out); n > 0 && m.Type.Out(n-1) == errorType {
		if e := out[n-1].Interface(); e != nil {
			return e.(error)
		}
	}
	return nil
}
