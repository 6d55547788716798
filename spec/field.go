// Package spec derives field specifications from annotated struct types
// and materializes them against concrete instances.
package spec

import (
	"reflect"

	"darray/expr"
	"darray/tag"
)

// MISSING marks an absent default value.
var MISSING = missing{}

type missing struct{}

func (missing) String() string {
	return "<missing>"
}

// FieldSpec describes one declared field of a specified class. Values are
// immutable: updates produce a new FieldSpec by structural copy.
type FieldSpec struct {
	// ID is the declared field name.
	ID string

	// Name is the display name: a literal, a template string resolved at
	// update time, or the field name when nothing was declared.
	Name any

	// Role classifies the field (attr, coord, data or name), possibly
	// combined with option labels such as MULTIPLE.
	Role tag.Tag

	// Type is the declared type expression.
	Type expr.Expr

	// Dims is the ordered dimension-name tuple. Nil means the field is
	// not array-like or defers to a nested specification.
	Dims []string

	// Dtype is the canonical element-type name, empty when undeclared.
	Dtype string

	// Default is the declared default value, or MISSING.
	Default any

	// Origin is the nested class type when the field defers to another
	// specification, else nil.
	Origin reflect.Type
}

// Update returns a copy of f with the default replaced by the live value
// read off obj (falling back to the existing default) and the name
// re-resolved against obj.
func (f FieldSpec) Update(obj any) (FieldSpec, error) {
	name, err := formatName(f.Name, obj)
	if err != nil {
		return FieldSpec{}, err
	}

	out := f
	out.Name = name
	out.Default = valueOf(obj, f.ID, f.Default)

	return out, nil
}

// valueOf reads the named field off an instance, or returns fallback when
// the instance does not carry it. A zero field value yields a declared
// default: the zero value cannot be told apart from an unset field.
func valueOf(obj any, id string, fallback any) any {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fallback
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fallback
	}

	fv := rv.FieldByName(id)
	if !fv.IsValid() || !fv.CanInterface() {
		return fallback
	}

	if fv.IsZero() && fallback != MISSING {
		return fallback
	}

	return fv.Interface()
}
