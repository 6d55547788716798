package spec

import (
	"reflect"

	"darray/tag"
)

// Specs is an ordered list of field specifications. Order always equals
// the declaration order of the source class; filters preserve it.
type Specs []FieldSpec

func (s Specs) of(bound tag.Tag) Specs {
	out := Specs{}
	for _, f := range s {
		if f.Role.Intersects(bound) {
			out = append(out, f)
		}
	}

	return out
}

// OfAttr selects attribute field specifications.
func (s Specs) OfAttr() Specs {
	return s.of(tag.ATTR)
}

// OfCoord selects coordinate field specifications.
func (s Specs) OfCoord() Specs {
	return s.of(tag.COORD)
}

// OfData selects data field specifications.
func (s Specs) OfData() Specs {
	return s.of(tag.DATA)
}

// OfName selects name field specifications.
func (s Specs) OfName() Specs {
	return s.of(tag.NAME)
}

// Update returns a new list with every specification updated against obj.
func (s Specs) Update(obj any) (Specs, error) {
	out := make(Specs, len(s))
	for i, f := range s {
		u, err := f.Update(obj)
		if err != nil {
			return nil, err
		}

		out[i] = u
	}

	return out, nil
}

// Spec is the ordered, immutable description of all classified fields of
// a class.
type Spec struct {
	// Fields holds the field specifications in declaration order.
	Fields Specs

	// Origin is the source class type.
	Origin reflect.Type
}

// Update returns a new specification with defaults and names materialized
// from obj. The receiver is left untouched.
func (s Spec) Update(obj any) (Spec, error) {
	fields, err := s.Fields.Update(obj)
	if err != nil {
		return Spec{}, err
	}

	return Spec{Fields: fields, Origin: s.Origin}, nil
}
