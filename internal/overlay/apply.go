package overlay

import (
	"fmt"

	"darray/dtype"
	"darray/internal/diagnostic"
	"darray/spec"
)

// Apply rewrites sp with the overrides of the matching class entry, if
// any. The input specification is not modified; the returned
// diagnostics report overlay entries that matched nothing.
func Apply(f *File, sp spec.Spec) (spec.Spec, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	if f == nil || sp.Origin == nil {
		return sp, res
	}

	co := classFor(f, sp.Origin.Name())
	if co == nil {
		return sp, res
	}

	fields := make(spec.Specs, 0, len(sp.Fields))

	for _, fs := range sp.Fields {
		if containsIdent(co.Ignore, fs.ID) {
			continue
		}

		if fo := fieldFor(co, fs.ID); fo != nil {
			updated, err := override(fs, fo)
			if err != nil {
				res.AddError("apply_failed", err.Error(), co.Class, fo.Field)
				continue
			}

			fs = updated
		}

		fields = append(fields, fs)
	}

	reportUnmatched(res, co, sp.Fields)

	return spec.Spec{Fields: fields, Origin: sp.Origin}, res
}

// override returns a copy of fs with the non-empty pieces of fo applied.
func override(fs spec.FieldSpec, fo *FieldOverlay) (spec.FieldSpec, error) {
	if fo.Name != "" {
		fs.Name = fo.Name
	}

	if fo.HasDims {
		fs.Dims = append([]string{}, fo.Dims...)
	}

	if fo.Dtype != "" {
		dt, err := dtype.CanonicalName(fo.Dtype)
		if err != nil {
			return fs, fmt.Errorf("dtype %q: %w", fo.Dtype, err)
		}

		fs.Dtype = dt
	}

	if fo.Default != "" {
		def, err := spec.ParseLiteral(fo.Default, fs.Dtype)
		if err != nil {
			return fs, fmt.Errorf("default %q: %w", fo.Default, err)
		}

		fs.Default = def
	}

	return fs, nil
}

func classFor(f *File, name string) *ClassOverlay {
	for i := range f.Classes {
		if sameIdent(f.Classes[i].Class, name) {
			return &f.Classes[i]
		}
	}

	return nil
}

func fieldFor(co *ClassOverlay, id string) *FieldOverlay {
	for i := range co.Fields {
		if sameIdent(co.Fields[i].Field, id) {
			return &co.Fields[i]
		}
	}

	return nil
}

func containsIdent(ids []string, id string) bool {
	for _, v := range ids {
		if sameIdent(v, id) {
			return true
		}
	}

	return false
}

func reportUnmatched(res *diagnostic.Diagnostics, co *ClassOverlay, fields spec.Specs) {
	known := func(id string) bool {
		for _, fs := range fields {
			if sameIdent(id, fs.ID) {
				return true
			}
		}

		return false
	}

	for i := range co.Fields {
		if !known(co.Fields[i].Field) {
			res.AddWarning("field_not_found", fmt.Sprintf("field %q matches nothing", co.Fields[i].Field), co.Class, co.Fields[i].Field)
		}
	}

	for _, ig := range co.Ignore {
		if !known(ig) {
			res.AddWarning("ignore_not_found", fmt.Sprintf("ignored field %q matches nothing", ig), co.Class, ig)
		}
	}
}
