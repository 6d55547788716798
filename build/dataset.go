package build

import (
	"errors"
	"fmt"

	"darray/internal/common"
	"darray/labeled"
)

// ErrNoVars reports a class with no data field to turn into a variable.
var ErrNoVars = errors.New("class declares no data fields")

// Dataset realizes obj into a labeled dataset: every data field becomes
// a variable keyed by its name, coordinate fields are attached against
// the combined dimensions, and attribute fields fill the attribute
// mapping.
func Dataset(obj any, opts ...Option) (*labeled.Dataset, error) {
	o := apply(opts)

	sp, err := o.Cache.FromStruct(obj)
	if err != nil {
		return nil, err
	}

	sp, err = sp.Update(obj)
	if err != nil {
		return nil, err
	}

	vars := sp.Fields.OfData()
	if common.IsEmpty(vars) {
		return nil, ErrNoVars
	}

	ds := labeled.NewDataset()

	for _, vs := range vars {
		arr, err := realize(vs, o.Reference, o.Cache)
		if err != nil {
			return nil, err
		}

		if err := ds.SetVar(nameKey(vs.Name), arr); err != nil {
			return nil, fmt.Errorf("field %s: %w", vs.ID, err)
		}
	}

	// Coordinates broadcast against the dataset itself, so scalar
	// values spread over the dimensions the variables established.
	if err := attachCoords(ds.SetCoord, ds.Dims(), sp.Fields.OfCoord(), ds, o.Cache); err != nil {
		return nil, err
	}

	if err := attachAttrs(ds.SetAttr, sp.Fields.OfAttr()); err != nil {
		return nil, err
	}

	if w, ok := obj.(DatasetWrapper); ok {
		return w.WrapDataset(ds)
	}

	return ds, nil
}
