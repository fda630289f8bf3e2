package descriptor

import (
	"fmt"
	"reflect"
	"strconv"
)

// TextFunc converts one call argument to its canonical textual form.
type TextFunc func(v any) (string, error)

// Text returns the converter for a scalar sort. It reports false for sorts
// without a textual form (array, object, map, list, file, stream).
//
// Integers are rendered base 10, floats in the shortest form that
// round-trips at their width, and a char as the UTF-8 encoding of its rune.
func Text(s Sort) (TextFunc, bool) {
	switch s {
	case SortBool:
		return boolText, true
	case SortChar:
		return charText, true
	case SortByte, SortShort, SortInt, SortLong:
		return intText(s), true
	case SortFloat:
		return floatText(32), true
	case SortDouble:
		return floatText(64), true
	case SortString:
		return stringText, true
	default:
		return nil, false
	}
}

// ArgumentError reports a call argument whose dynamic type does not fit the
// parameter sort.
type ArgumentError struct {
	Sort Sort
	Got  any
}

func (e *ArgumentError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("nil is not a %s value", e.Sort)
	}
	return fmt.Sprintf("%T is not a %s value", e.Got, e.Sort)
}

func boolText(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return "", &ArgumentError{Sort: SortBool, Got: v}
	}
	return strconv.FormatBool(rv.Bool()), nil
}

func charText(v any) (string, error) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return string(rune(rv.Int())), nil
	case rv.CanUint():
		return string(rune(rv.Uint())), nil
	}
	return "", &ArgumentError{Sort: SortChar, Got: v}
}

func intText(sort Sort) TextFunc {
	return func(v any) (string, error) {
		rv := reflect.ValueOf(v)
		switch {
		case rv.CanInt():
			return strconv.FormatInt(rv.Int(), 10), nil
		case rv.CanUint():
			return strconv.FormatUint(rv.Uint(), 10), nil
		}
		return "", &ArgumentError{Sort: sort, Got: v}
	}
}

func floatText(bits int) TextFunc {
	sort := SortDouble
	if bits == 32 {
		sort = SortFloat
	}
	return func(v any) (string, error) {
		rv := reflect.ValueOf(v)
		if !rv.CanFloat() {
			return "", &ArgumentError{Sort: sort, Got: v}
		}
		return strconv.FormatFloat(rv.Float(), 'g', -1, bits), nil
	}
}

func stringText(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", &ArgumentError{Sort: SortString, Got: v}
	}
	return rv.String(), nil
}
