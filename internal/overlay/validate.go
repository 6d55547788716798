package overlay

import (
	"fmt"

	"darray/dtype"
	"darray/internal/diagnostic"
	"darray/spec"
)

// Validate checks an overlay file for structural problems: duplicate
// classes or fields, unknown data types, malformed default literals and
// repeated dimensions. It does not need the target structs; Apply
// reports identifiers that match nothing.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("overlay_is_nil", "overlay file is nil", "", "")
		return res
	}

	seenClasses := map[string]struct{}{}

	for i := range f.Classes {
		co := &f.Classes[i]
		if co.Class == "" {
			res.AddError("class_unnamed", "class entry has no class identifier", "", "")
			continue
		}

		key := normalizeIdent(co.Class)
		if _, ok := seenClasses[key]; ok {
			res.AddError("duplicate_class", fmt.Sprintf("duplicate class %q", co.Class), co.Class, "")
			continue
		}

		seenClasses[key] = struct{}{}

		validateClass(res, co)
	}

	return res
}

func validateClass(res *diagnostic.Diagnostics, co *ClassOverlay) {
	seenFields := map[string]struct{}{}

	for i := range co.Fields {
		fo := &co.Fields[i]
		if fo.Field == "" {
			res.AddError("field_unnamed", "field entry has no field identifier", co.Class, "")
			continue
		}

		key := normalizeIdent(fo.Field)
		if _, ok := seenFields[key]; ok {
			res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fo.Field), co.Class, fo.Field)
			continue
		}

		seenFields[key] = struct{}{}

		validateField(res, co.Class, fo)
	}

	for _, ig := range co.Ignore {
		if _, ok := seenFields[normalizeIdent(ig)]; ok {
			res.AddError("ignored_and_overridden", fmt.Sprintf("field %q is both overridden and ignored", ig), co.Class, ig)
		}
	}
}

func validateField(res *diagnostic.Diagnostics, class string, fo *FieldOverlay) {
	if fo.Dtype != "" {
		if _, err := dtype.FromName(fo.Dtype); err != nil {
			res.AddError("unknown_dtype", fmt.Sprintf("unknown dtype %q", fo.Dtype), class, fo.Field)
		}
	}

	if fo.Default != "" && fo.Dtype != "" {
		if _, err := spec.ParseLiteral(fo.Default, fo.Dtype); err != nil {
			res.AddError("bad_default", fmt.Sprintf("default %q does not parse as %s", fo.Default, fo.Dtype), class, fo.Field)
		}
	}

	seenDims := map[string]struct{}{}

	for _, d := range fo.Dims {
		if _, ok := seenDims[d]; ok {
			res.AddError("duplicate_dim", fmt.Sprintf("dimension %q repeats", d), class, fo.Field)
			continue
		}

		seenDims[d] = struct{}{}
	}
}
