package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// compatible reports whether a value of type from can be passed to a
// parameter of type to. A nil from stands for an untyped nil value.
//
// Rules, first match wins:
//  1. from is assignable to to
//  2. to is a string kind
//  3. from is a string kind and to is numeric
//  4. from and to are both numeric
//  5. from is a string kind and to is a bool kind
func compatible(from, to reflect.Type) bool {
	if from == nil {
		return nillable(to)
	}
	switch {
	case from.AssignableTo(to):
		return true
	case to.Kind() == reflect.String:
		return true
	case from.Kind() == reflect.String && isNumeric(to.Kind()):
		return true
	case isNumeric(from.Kind()) && isNumeric(to.Kind()):
		return true
	case from.Kind() == reflect.String && to.Kind() == reflect.Bool:
		return true
	}
	return false
}

// coerce converts value to type to following the same rules as compatible.
func coerce(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		if nillable(to) {
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, fmt.Errorf("binding: cannot use nil as %s", to)
	}

	v := reflect.ValueOf(value)
	from := v.Type()
	switch {
	case from.AssignableTo(to):
		return v, nil
	case to.Kind() == reflect.String:
		return reflect.ValueOf(fmt.Sprint(value)).Convert(to), nil
	case from.Kind() == reflect.String && isNumeric(to.Kind()):
		return parseNumber(v.String(), to)
	case isNumeric(from.Kind()) && isNumeric(to.Kind()):
		return v.Convert(to), nil
	case from.Kind() == reflect.String && to.Kind() == reflect.Bool:
		return reflect.ValueOf(strings.EqualFold(strings.TrimSpace(v.String()), "true")).Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("binding: cannot use %s as %s", from, to)
}

func parseNumber(s string, to reflect.Type) (reflect.Value, error) {
	s = strings.TrimSpace(s)
	out := reflect.New(to).Elem()
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, to.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("binding: %w", err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, to.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("binding: %w", err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, to.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("binding: %w", err)
		}
		out.SetFloat(f)
	}
	return out, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
