package expr

import (
	"errors"
	"fmt"
	"reflect"

	"darray/dtype"
	"darray/tag"
)

// roleBound selects the annotation layers that decide a field's role.
const roleBound = tag.FIELD | tag.NAME

var (
	// ErrBadDims reports a dimension expression that is present but not a
	// literal or a tuple of literals.
	ErrBadDims = errors.New("dimensions must be a literal or a tuple of literals")

	// ErrBadDtype reports an element-type expression that cannot be
	// resolved to a canonical data type name.
	ErrBadDtype = errors.New("element type is not a recognizable data type")

	// ErrBadName reports a declared name that is not hashable.
	ErrBadName = errors.New("declared name is not hashable")
)

// Dims extracts the ordered dimension names declared in x.
//
// It returns an empty non-nil slice for a zero-dimension declaration, a
// one-element slice for a bare dimension literal, and an N-element slice
// for a tuple of literals. It returns nil (and no error) when x defers to
// a nested class specification or carries no dims-tagged type at all.
func Dims(x Expr) ([]string, error) {
	d, ok := Tagged(x, tag.DIMS)
	if !ok {
		return nil, nil
	}

	return dimsOf(d)
}

func dimsOf(x Expr) ([]string, error) {
	switch v := x.(type) {
	case Literal:
		return []string{v.Value}, nil

	case Annotated:
		return dimsOf(v.Base)

	case Tuple:
		out := make([]string, 0, len(v.Elems))
		for _, e := range v.Elems {
			sub, err := dimsOf(e)
			if err != nil {
				return nil, err
			}

			out = append(out, sub...)
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrBadDims, x)
}

// Dtype extracts the canonical element-type name declared in x, or ""
// when the element type is absent, unconstrained, or none. A union
// element type resolves to its first member.
func Dtype(x Expr) (string, error) {
	d, ok := Tagged(x, tag.DTYPE)
	if !ok {
		return "", nil
	}

	return dtypeOf(d)
}

func dtypeOf(x Expr) (string, error) {
	switch v := x.(type) {
	case Any, None:
		return "", nil

	case Union:
		if len(v.Members) == 0 {
			return "", nil
		}

		return dtypeOf(v.Members[0])

	case Annotated:
		return dtypeOf(v.Base)

	case Literal:
		return dtype.CanonicalName(v.Value)

	case Ident:
		return dtype.CanonicalName(v.Name)
	}

	return "", fmt.Errorf("%w: %T", ErrBadDtype, x)
}

// Name extracts the declared display name of x, or def when x carries no
// role-tagged type, declares no name, or uses the Ellipsis marker. A
// present but unhashable name is an error.
func Name(x Expr, def any) (any, error) {
	a, ok := tagged(x, roleBound)
	if !ok || len(a.Meta) < 2 {
		return def, nil
	}

	name := a.Meta[1]
	if name == Ellipsis {
		return def, nil
	}

	if !hashable(name) {
		return nil, fmt.Errorf("%w: %v", ErrBadName, name)
	}

	return name, nil
}

// Role extracts the role tag of x, or def when x carries no role-tagged
// type.
func Role(x Expr, def tag.Tag) tag.Tag {
	tags := Tags(x, roleBound)
	if len(tags) == 0 {
		return def
	}

	return tags[0]
}

// Origin extracts the class reference x defers to, if any.
func Origin(x Expr) (Ref, bool) {
	o, ok := Tagged(x, tag.ORIGIN)
	if !ok {
		return Ref{}, false
	}

	r, ok := o.(Ref)
	return r, ok
}

func hashable(v any) bool {
	if v == nil {
		return true
	}

	if nt, ok := v.(NameTuple); ok {
		for _, e := range nt {
			if !hashable(e) {
				return false
			}
		}

		return true
	}

	return reflect.TypeOf(v).Comparable()
}
