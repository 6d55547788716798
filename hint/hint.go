// Package hint builds type expressions for the supported field roles,
// either programmatically or by parsing the "darr" struct tag.
package hint

import (
	"reflect"

	"darray/expr"
	"darray/tag"
)

// Dim returns a single dimension-name literal.
func Dim(name string) expr.Expr {
	return expr.Literal{Value: name}
}

// Dims returns a dimension tuple. Dims() declares a zero-dimension
// (scalar) layout.
func Dims(names ...string) expr.Expr {
	elems := make([]expr.Expr, len(names))
	for i, n := range names {
		elems[i] = expr.Literal{Value: n}
	}

	return expr.Tuple{Elems: elems}
}

// Dtype returns an element-type name expression.
func Dtype(name string) expr.Expr {
	return expr.Ident{Name: name}
}

// Attr declares an attribute field of type t.
func Attr(t expr.Expr) expr.Expr {
	return expr.Annotated{Base: t, Meta: []any{tag.ATTR}}
}

// Attrs declares an attribute field whose mapping value spreads into
// multiple attribute entries.
func Attrs(t expr.Expr) expr.Expr {
	return expr.Annotated{Base: t, Meta: []any{tag.ATTR | tag.MULTIPLE}}
}

// Name declares a name field of type t.
func Name(t expr.Expr) expr.Expr {
	return expr.Annotated{Base: t, Meta: []any{tag.NAME}}
}

// Coord declares a coordinate field with the given dimensions and element
// type. The element type is also accepted bare, so a scalar value can
// stand in for the array.
func Coord(dims, dt expr.Expr) expr.Expr {
	return arrayLike(tag.COORD, dims, dt)
}

// Data declares a data field with the given dimensions and element type.
func Data(dims, dt expr.Expr) expr.Expr {
	return arrayLike(tag.DATA, dims, dt)
}

// Coordof declares a coordinate field that defers to another specified
// class.
func Coordof[T any]() expr.Expr {
	return CoordofType(reflect.TypeOf((*T)(nil)).Elem())
}

// Dataof declares a data field that defers to another specified class.
func Dataof[T any]() expr.Expr {
	return DataofType(reflect.TypeOf((*T)(nil)).Elem())
}

// CoordofType is Coordof for a reflected class type.
func CoordofType(rt reflect.Type) expr.Expr {
	return deferred(tag.COORD, expr.Ref{Name: rt.Name(), Type: rt})
}

// DataofType is Dataof for a reflected class type.
func DataofType(rt reflect.Type) expr.Expr {
	return deferred(tag.DATA, expr.Ref{Name: rt.Name(), Type: rt})
}

// WithName attaches a display name to a role-annotated expression. Use
// expr.Ellipsis for an explicit "no name".
func WithName(x expr.Expr, name any) expr.Expr {
	if a, ok := x.(expr.Annotated); ok {
		meta := make([]any, 0, len(a.Meta)+1)
		meta = append(meta, a.Meta...)
		meta = append(meta, name)

		return expr.Annotated{Base: a.Base, Meta: meta}
	}

	return expr.Annotated{Base: x, Meta: []any{name}}
}

func arrayLike(role tag.Tag, dims, dt expr.Expr) expr.Expr {
	return expr.Annotated{
		Base: expr.Union{Members: []expr.Expr{
			expr.Collection{
				Dims:  expr.Annotated{Base: dims, Meta: []any{tag.DIMS}},
				Dtype: expr.Annotated{Base: dt, Meta: []any{tag.DTYPE}},
			},
			dt,
		}},
		Meta: []any{role},
	}
}

func deferred(role tag.Tag, ref expr.Ref) expr.Expr {
	return expr.Annotated{
		Base: expr.Union{Members: []expr.Expr{
			expr.Annotated{Base: ref, Meta: []any{tag.ORIGIN}},
			expr.Any{},
		}},
		Meta: []any{role},
	}
}
