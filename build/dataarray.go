package build

import (
	"errors"
	"fmt"
	"reflect"

	"darray/internal/common"
	"darray/labeled"
	"darray/spec"
	"darray/tag"
)

var (
	// ErrMissingValue reports a required field with no value.
	ErrMissingValue = errors.New("value is missing")

	// ErrBadNested reports a raw value that does not fit the data field
	// of its nested class.
	ErrBadNested = errors.New("value does not fit the nested class")
)

// DataArray realizes obj into a labeled array: the first data field
// becomes the payload, coordinate fields are attached (dimension
// coordinates first), attribute fields fill the attribute mapping, and
// the name field, if any, names the result.
func DataArray(obj any, opts ...Option) (*labeled.Array, error) {
	o := apply(opts)

	sp, err := o.Cache.FromStruct(obj)
	if err != nil {
		return nil, err
	}

	sp, err = sp.Update(obj)
	if err != nil {
		return nil, err
	}

	data, _ := common.First(sp.Fields.OfData())

	arr, err := realize(data, o.Reference, o.Cache)
	if err != nil {
		return nil, err
	}

	if err := attachCoords(arr.SetCoord, arr.Dims(), sp.Fields.OfCoord(), arr, o.Cache); err != nil {
		return nil, err
	}

	if err := attachAttrs(arr.SetAttr, sp.Fields.OfAttr()); err != nil {
		return nil, err
	}

	if ns, ok := common.First(sp.Fields.OfName()); ok {
		if ns.Default == spec.MISSING {
			return nil, fmt.Errorf("field %s: %w", ns.ID, ErrMissingValue)
		}

		name, err := spec.FormatName(ns.Default, obj)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", ns.ID, err)
		}

		arr.SetName(name)
	}

	if w, ok := obj.(ArrayWrapper); ok {
		return w.WrapArray(arr)
	}

	return arr, nil
}

// realize converts one coordinate or data specification into a labeled
// array, going through the nested class when the field defers to one.
func realize(fs spec.FieldSpec, ref labeled.Ref, cache *spec.Cache) (*labeled.Array, error) {
	if fs.Default == spec.MISSING {
		return nil, fmt.Errorf("field %s: %w", fs.ID, ErrMissingValue)
	}

	if fs.Origin == nil {
		arr, err := labeled.FromValue(fs.Default, fs.Dims, fs.Dtype, ref)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fs.ID, err)
		}

		return arr, nil
	}

	inst := fs.Default
	if baseType(inst) != fs.Origin {
		wrapped, err := wrapOrigin(fs.Origin, fs.Default, cache)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fs.ID, err)
		}

		inst = wrapped
	}

	return DataArray(inst, WithReference(ref), WithCache(cache))
}

// wrapOrigin builds an instance of the nested class holding value as its
// data field.
func wrapOrigin(origin reflect.Type, value any, cache *spec.Cache) (any, error) {
	nested, err := cache.FromType(origin)
	if err != nil {
		return nil, err
	}

	data, _ := common.First(nested.Fields.OfData())

	pv := reflect.New(origin).Elem()
	fv := pv.FieldByName(data.ID)

	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(fv.Type()):
		fv.Set(rv)
	case rv.Type().ConvertibleTo(fv.Type()):
		fv.Set(rv.Convert(fv.Type()))
	default:
		return nil, fmt.Errorf("%w: %s into %s.%s", ErrBadNested, rv.Type(), origin.Name(), data.ID)
	}

	return pv.Interface(), nil
}

// attachCoords realizes coordinate specifications against ref and
// attaches them, dimension coordinates before auxiliary ones.
func attachCoords(set func(string, *labeled.Array), dims []string, coords spec.Specs, ref labeled.Ref, cache *spec.Cache) error {
	for pass := 0; pass < 2; pass++ {
		for _, cs := range coords {
			isDim := common.Contains(dims, nameKey(cs.Name))
			if isDim != (pass == 0) {
				continue
			}

			c, err := realize(cs, ref, cache)
			if err != nil {
				return err
			}

			set(nameKey(cs.Name), c)
		}
	}

	return nil
}

// attachAttrs fills the attribute mapping. MULTIPLE attribute fields
// spread their map entries.
func attachAttrs(set func(string, any), attrs spec.Specs) error {
	for _, as := range attrs {
		if as.Default == spec.MISSING {
			return fmt.Errorf("field %s: %w", as.ID, ErrMissingValue)
		}

		if !spread(as, set) {
			set(nameKey(as.Name), as.Default)
		}
	}

	return nil
}

func spread(as spec.FieldSpec, set func(string, any)) bool {
	if !as.Role.Intersects(tag.MULTIPLE) {
		return false
	}

	rv := reflect.ValueOf(as.Default)
	if rv.Kind() != reflect.Map {
		return false
	}

	iter := rv.MapRange()
	for iter.Next() {
		set(nameKey(iter.Key().Interface()), iter.Value().Interface())
	}

	return true
}

func nameKey(name any) string {
	if s, ok := name.(string); ok {
		return s
	}

	return fmt.Sprint(name)
}

func baseType(v any) reflect.Type {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	return rt
}
