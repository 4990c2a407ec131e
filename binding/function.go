package binding

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// Function is a method bound to the object it was looked up on.
type Function struct {
	// Name is the Go name of the method.
	Name string

	recv   reflect.Value
	method reflect.Method
}

// NumIn returns the number of parameters, not counting the receiver.
func (f *Function) NumIn() int {
	return f.method.Type.NumIn() - 1
}

// Call invokes the method. Arguments are coerced to the parameter types with
// the same rules as property setters; missing arguments are passed as zero
// values and extra arguments are dropped unless the method is variadic.
// A trailing error result is split off and returned as the error; a panic in
// the method is recovered and returned as an error.
func (f *Function) Call(args ...any) (results []any, err error) {
	in, err := f.arguments(args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("binding: %s panicked: %v", f.Name, r)
		}
	}()
	out := f.method.Func.Call(in)

	if n := len(out); n > 0 && f.method.Type.Out(n-1) == errorType {
		if e := out[n-1].Interface(); e != nil {
			return nil, e.(error)
		}
		out = out[:n-1]
	}
	results = make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

func (f *Function) arguments(args []any) ([]reflect.Value, error) {
	mt := f.method.Type
	numIn := mt.NumIn() - 1
	fixed := numIn
	if mt.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, numIn+1)
	in = append(in, f.recv)
	for i := 0; i < fixed; i++ {
		pt := mt.In(i + 1)
		if i >= len(args) {
			in = append(in, reflect.Zero(pt))
			continue
		}
		v, err := coerce(args[i], pt)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", f.Name, i, err)
		}
		in = append(in, v)
	}
	if mt.IsVariadic() && len(args) > fixed {
		elem := mt.In(numIn).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := coerce(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("%s argument %d: %w", f.Name, i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}
