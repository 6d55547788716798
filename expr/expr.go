// Package expr models declared field types as a closed set of expression
// nodes and provides the traversal and extraction functions the spec
// builder is made of.
//
// An expression is built once per field, either programmatically (see the
// hint package) or by parsing a struct tag, and is never re-resolved.
package expr

import "reflect"

// Expr is a fully resolved type expression of a declared field.
//
// The set of implementations is closed: Literal, Ident, Tuple, Union,
// Annotated, Collection, Ref, Any and None.
type Expr interface {
	isExpr()
}

// Literal is a dimension-name literal, e.g. the "x" in coord(x, int).
type Literal struct {
	Value string
}

// Ident is a declared element-type name, e.g. "int" or "datetime64[ns]".
type Ident struct {
	Name string
}

// Tuple is an ordered group of expressions, used for dimension tuples.
// An empty tuple declares a zero-dimension (scalar) layout.
type Tuple struct {
	Elems []Expr
}

// Union is a union of alternative expressions. Extraction follows the
// first member that qualifies, in declared order.
type Union struct {
	Members []Expr
}

// Annotated wraps a base expression with ordered metadata. Metadata
// elements are either tag.Tag values or auxiliary objects such as a
// declared display name.
type Annotated struct {
	Base Expr
	Meta []any
}

// Collection pairs a dimensions expression with an element-type
// expression, modeling an array-like layout.
type Collection struct {
	Dims  Expr
	Dtype Expr
}

// Ref refers to another specified class. Type is resolved against the
// field's own namespace at spec-construction time and may be nil when the
// expression is inspected statically.
type Ref struct {
	Name string
	Type reflect.Type
}

// Any is the unconstrained type marker.
type Any struct{}

// None is the absent-type marker.
type None struct{}

func (Literal) isExpr()    {}
func (Ident) isExpr()      {}
func (Tuple) isExpr()      {}
func (Union) isExpr()      {}
func (Annotated) isExpr()  {}
func (Collection) isExpr() {}
func (Ref) isExpr()        {}
func (Any) isExpr()        {}
func (None) isExpr()       {}

// Ellipsis is the explicit "no name" marker usable as a name metadata
// element.
var Ellipsis = ellipsis{}

type ellipsis struct{}

// NameTuple is a tuple-valued display name. It is formatted element-wise
// when a specification is updated against an instance.
type NameTuple []any
