// Package labeled provides the labeled-array containers that realized
// specifications are materialized into: a multidimensional array paired
// with named dimensions, per-dimension coordinates, and metadata
// attributes, plus the dataset variant holding several named arrays.
package labeled

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrDuplicateDim reports a repeated dimension name.
	ErrDuplicateDim = errors.New("duplicate dimension name")

	// ErrShapeMismatch reports data whose rank does not match the declared
	// dimensions and cannot be broadcast.
	ErrShapeMismatch = errors.New("could not create a labeled array")
)

// Ref is any labeled object usable as a shape reference for broadcasting.
type Ref interface {
	Dims() []string
	Sizes() map[string]int
}

// Array is a multidimensional array with named dimensions, optional
// coordinates, and metadata attributes. Data is stored flat in row-major
// order.
type Array struct {
	name  any
	dims  []string
	shape []int
	data  reflect.Value // flat slice of the element type
	dtype string

	coordNames []string
	coords     map[string]*Array

	attrs map[string]any
}

// New converts values to a labeled array with the given dimensions,
// casting to the named data type when one is given. The rank of values
// must equal the number of dimensions.
func New(values any, dims []string, dtypeName string) (*Array, error) {
	return FromValue(values, dims, dtypeName, nil)
}

// FromValue converts values to a labeled array. When the rank of values
// matches the number of dimensions, the dimensions are assigned directly.
// A rank-zero value with a reference is broadcast across the reference's
// subspace spanned by the declared dimensions. Any other rank mismatch is
// an error carrying the offending shape and dimensions.
func FromValue(values any, dims []string, dtypeName string, ref Ref) (*Array, error) {
	if err := checkDims(dims); err != nil {
		return nil, err
	}

	if a, ok := values.(*Array); ok {
		values = a.Values()
	}

	flat, shape, err := flatten(values)
	if err != nil {
		return nil, err
	}

	flat, canonical, err := cast(flat, dtypeName)
	if err != nil {
		return nil, err
	}

	switch {
	case len(shape) == len(dims):
		return newArray(dims, shape, flat, canonical), nil

	case len(shape) == 0 && ref != nil:
		return broadcastScalar(flat.Index(0), canonical, dims, ref), nil
	}

	return nil, fmt.Errorf("%w: mismatch between shape %v and dims %v", ErrShapeMismatch, shape, dims)
}

func newArray(dims []string, shape []int, flat reflect.Value, dtypeName string) *Array {
	return &Array{
		dims:   append([]string(nil), dims...),
		shape:  append([]int(nil), shape...),
		data:   flat,
		dtype:  dtypeName,
		coords: map[string]*Array{},
		attrs:  map[string]any{},
	}
}

// broadcastScalar replicates a scalar across the reference dimensions
// retained by the declared dimension set, in reference order.
func broadcastScalar(v reflect.Value, dtypeName string, declared []string, ref Ref) *Array {
	sizes := ref.Sizes()

	var dims []string
	var shape []int

	n := 1
	for _, d := range ref.Dims() {
		if !contains(declared, d) {
			continue
		}

		dims = append(dims, d)
		shape = append(shape, sizes[d])
		n *= sizes[d]
	}

	flat := reflect.MakeSlice(reflect.SliceOf(v.Type()), n, n)
	for i := 0; i < n; i++ {
		flat.Index(i).Set(v)
	}

	return newArray(dims, shape, flat, dtypeName)
}

func checkDims(dims []string) error {
	seen := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateDim, d)
		}

		seen[d] = struct{}{}
	}

	return nil
}

func contains(dims []string, d string) bool {
	for _, x := range dims {
		if x == d {
			return true
		}
	}

	return false
}

// Dims returns the ordered dimension names.
func (a *Array) Dims() []string {
	return append([]string(nil), a.dims...)
}

// Shape returns the array shape along its dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.dims)
}

// Sizes returns the dimension-to-size mapping.
func (a *Array) Sizes() map[string]int {
	out := make(map[string]int, len(a.dims))
	for i, d := range a.dims {
		out[d] = a.shape[i]
	}

	return out
}

// Dtype returns the canonical element-type name.
func (a *Array) Dtype() string {
	return a.dtype
}

// Values returns the flat row-major data slice.
func (a *Array) Values() any {
	return a.data.Interface()
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.data.Len()
}

// SetCoord attaches a coordinate array under the given key, keeping
// insertion order.
func (a *Array) SetCoord(key string, c *Array) {
	if _, ok := a.coords[key]; !ok {
		a.coordNames = append(a.coordNames, key)
	}

	a.coords[key] = c
}

// Coord returns the coordinate attached under key.
func (a *Array) Coord(key string) (*Array, bool) {
	c, ok := a.coords[key]
	return c, ok
}

// CoordNames returns coordinate keys in insertion order.
func (a *Array) CoordNames() []string {
	return append([]string(nil), a.coordNames...)
}

// SetAttr sets a metadata attribute.
func (a *Array) SetAttr(key string, v any) {
	a.attrs[key] = v
}

// Attrs returns the metadata attribute mapping.
func (a *Array) Attrs() map[string]any {
	return a.attrs
}

// SetName sets the display name.
func (a *Array) SetName(name any) {
	a.name = name
}

// Name returns the display name.
func (a *Array) Name() any {
	return a.name
}
