package labeled

import (
	"errors"
	"fmt"
	"reflect"

	"darray/dtype"
)

var (
	// ErrBadValue reports a value that cannot be converted to an array.
	ErrBadValue = errors.New("value is not convertible to an array")

	// ErrRagged reports nested slices of non-uniform length.
	ErrRagged = errors.New("nested slices have non-uniform lengths")

	// ErrBadCast reports an element type that cannot be cast to the
	// declared data type.
	ErrBadCast = errors.New("cannot cast element type")
)

// flatten converts an arbitrarily nested slice (or a scalar) to a flat
// slice of its element type plus the derived shape. A scalar yields a
// one-element slice and a zero-length shape.
func flatten(v any) (reflect.Value, []int, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, nil, fmt.Errorf("%w: nil", ErrBadValue)
	}

	shape, elem, err := shapeOf(rv)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	if dtype.FromReflectType(elem) == 0 {
		return reflect.Value{}, nil, fmt.Errorf("%w: element type %s", ErrBadValue, elem)
	}

	n := 1
	for _, s := range shape {
		n *= s
	}

	flat := reflect.MakeSlice(reflect.SliceOf(elem), 0, n)

	flat, err = appendFlat(flat, rv, shape)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	return flat, shape, nil
}

// shapeOf derives the shape and element type by descending first
// elements.
func shapeOf(rv reflect.Value) ([]int, reflect.Type, error) {
	var shape []int

	for rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		shape = append(shape, rv.Len())

		if rv.Len() == 0 {
			// empty axis: element type is the remaining slice depth
			t := rv.Type().Elem()
			for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
				shape = append(shape, 0)
				t = t.Elem()
			}

			return shape, t, nil
		}

		rv = rv.Index(0)
	}

	return shape, rv.Type(), nil
}

func appendFlat(flat, rv reflect.Value, shape []int) (reflect.Value, error) {
	if len(shape) == 0 {
		return reflect.Append(flat, rv), nil
	}

	if rv.Len() != shape[0] {
		return flat, fmt.Errorf("%w: expected %d, got %d", ErrRagged, shape[0], rv.Len())
	}

	var err error
	for i := 0; i < rv.Len(); i++ {
		flat, err = appendFlat(flat, rv.Index(i), shape[1:])
		if err != nil {
			return flat, err
		}
	}

	return flat, nil
}

// cast converts a flat slice to the named data type. An empty name keeps
// the element type and resolves the canonical name from it.
func cast(flat reflect.Value, dtypeName string) (reflect.Value, string, error) {
	elem := flat.Type().Elem()

	if dtypeName == "" {
		k := dtype.FromReflectType(elem)
		if k == 0 {
			return flat, "", fmt.Errorf("%w: %s", ErrBadValue, elem)
		}

		return flat, k.Name(), nil
	}

	k, err := dtype.FromName(dtypeName)
	if err != nil {
		return flat, "", err
	}

	target := k.GoType()
	if elem == target {
		return flat, k.Name(), nil
	}

	if !convertible(elem, target) {
		return flat, "", fmt.Errorf("%w %s to %s", ErrBadCast, elem, k.Name())
	}

	out := reflect.MakeSlice(reflect.SliceOf(target), flat.Len(), flat.Len())
	for i := 0; i < flat.Len(); i++ {
		out.Index(i).Set(flat.Index(i).Convert(target))
	}

	return out, k.Name(), nil
}

// convertible admits numeric-to-numeric conversions plus identical kinds.
// Strings, bools and times never convert implicitly.
func convertible(from, to reflect.Type) bool {
	fk, tk := dtype.FromReflectType(from), dtype.FromReflectType(to)
	if fk == 0 || tk == 0 {
		return false
	}

	if fk.IsNumber() && tk.IsNumber() {
		return from.ConvertibleTo(to)
	}

	return fk == tk
}
