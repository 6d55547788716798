package expr

import "darray/tag"

// visit walks x left-to-right, outside-in, calling fn for every annotated
// sub-expression until fn returns true.
func visit(x Expr, fn func(Annotated) bool) bool {
	switch v := x.(type) {
	case Annotated:
		if fn(v) {
			return true
		}

		return visit(v.Base, fn)

	case Union:
		for _, m := range v.Members {
			if visit(m, fn) {
				return true
			}
		}

	case Collection:
		if visit(v.Dims, fn) {
			return true
		}

		return visit(v.Dtype, fn)

	case Tuple:
		for _, e := range v.Elems {
			if visit(e, fn) {
				return true
			}
		}
	}

	return false
}

// tagged returns the first annotated sub-expression whose direct metadata
// intersects bound. Traversal stops at the first match: later union
// members or deeper annotation layers are never considered.
func tagged(x Expr, bound tag.Tag) (Annotated, bool) {
	var found Annotated
	ok := visit(x, func(a Annotated) bool {
		if bound.Annotates(a.Meta...) {
			found = a
			return true
		}

		return false
	})

	return found, ok
}

// Tagged returns the base of the first sub-expression tagged within bound.
func Tagged(x Expr, bound tag.Tag) (Expr, bool) {
	a, ok := tagged(x, bound)
	if !ok {
		return nil, false
	}

	return a.Base, true
}

// Tags returns every Tag attached at the first location tagged within
// bound, preserving metadata order. Non-tag metadata is excluded.
func Tags(x Expr, bound tag.Tag) []tag.Tag {
	a, ok := tagged(x, bound)
	if !ok {
		return nil
	}

	var out []tag.Tag
	for _, m := range a.Meta {
		if t, isTag := m.(tag.Tag); isTag {
			out = append(out, t)
		}
	}

	return out
}

// Nontags returns every non-tag metadata object at the first location
// tagged within bound, preserving metadata order.
func Nontags(x Expr, bound tag.Tag) []any {
	a, ok := tagged(x, bound)
	if !ok {
		return nil
	}

	var out []any
	for _, m := range a.Meta {
		if !tag.Creates(m) {
			out = append(out, m)
		}
	}

	return out
}
