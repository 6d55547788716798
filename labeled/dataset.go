package labeled

import (
	"errors"
	"fmt"
)

// ErrDimConflict reports a data variable whose dimension size disagrees
// with the dataset.
var ErrDimConflict = errors.New("conflicting dimension size")

// Dataset is an ordered mapping of named arrays sharing dimensions, plus
// dataset-level coordinates and attributes.
type Dataset struct {
	varNames []string
	vars     map[string]*Array

	coordNames []string
	coords     map[string]*Array

	attrs map[string]any
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		vars:   map[string]*Array{},
		coords: map[string]*Array{},
		attrs:  map[string]any{},
	}
}

// SetVar adds or replaces a data variable, keeping insertion order. The
// variable's dimension sizes must agree with those already present.
func (d *Dataset) SetVar(key string, a *Array) error {
	sizes := d.Sizes()
	for dim, size := range a.Sizes() {
		if have, ok := sizes[dim]; ok && have != size {
			return fmt.Errorf("%w: %q is %d, %q brings %d", ErrDimConflict, dim, have, key, size)
		}
	}

	if _, ok := d.vars[key]; !ok {
		d.varNames = append(d.varNames, key)
	}

	d.vars[key] = a
	return nil
}

// Var returns the data variable stored under key.
func (d *Dataset) Var(key string) (*Array, bool) {
	a, ok := d.vars[key]
	return a, ok
}

// VarNames returns data variable keys in insertion order.
func (d *Dataset) VarNames() []string {
	return append([]string(nil), d.varNames...)
}

// Dims returns dimension names in order of first appearance across the
// data variables.
func (d *Dataset) Dims() []string {
	var out []string
	for _, key := range d.varNames {
		for _, dim := range d.vars[key].dims {
			if !contains(out, dim) {
				out = append(out, dim)
			}
		}
	}

	return out
}

// Sizes returns the dimension-to-size mapping across all data variables.
func (d *Dataset) Sizes() map[string]int {
	out := map[string]int{}
	for _, key := range d.varNames {
		for dim, size := range d.vars[key].Sizes() {
			out[dim] = size
		}
	}

	return out
}

// SetCoord attaches a dataset-level coordinate, keeping insertion order.
func (d *Dataset) SetCoord(key string, c *Array) {
	if _, ok := d.coords[key]; !ok {
		d.coordNames = append(d.coordNames, key)
	}

	d.coords[key] = c
}

// Coord returns the coordinate attached under key.
func (d *Dataset) Coord(key string) (*Array, bool) {
	c, ok := d.coords[key]
	return c, ok
}

// CoordNames returns coordinate keys in insertion order.
func (d *Dataset) CoordNames() []string {
	return append([]string(nil), d.coordNames...)
}

// SetAttr sets a metadata attribute.
func (d *Dataset) SetAttr(key string, v any) {
	d.attrs[key] = v
}

// Attrs returns the metadata attribute mapping.
func (d *Dataset) Attrs() map[string]any {
	return d.attrs
}
