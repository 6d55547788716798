package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"sort"

	"golang.org/x/tools/go/packages"

	"darray/expr"
	"darray/hint"
	"darray/internal/diagnostic"
	"darray/spec"
	"darray/tag"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Checker loads Go packages and validates the darr tags they carry.
type Checker struct {
	report *Report
	diags  *diagnostic.Diagnostics
}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{
		report: &Report{},
		diags:  &diagnostic.Diagnostics{},
	}
}

// Check loads the specified packages and validates every darr-tagged
// struct in them. Patterns are standard Go package patterns
// (e.g. "./...", "darray/examples").
func (c *Checker) Check(patterns ...string) (*Report, *diagnostic.Diagnostics, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		c.processPackage(pkg)
	}

	c.checkDeferredRefs()

	return c.report, c.diags, nil
}

// processPackage walks the exported struct types of a loaded package.
func (c *Checker) processPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()

	names := scope.Names()
	sort.Strings(names)

	for _, name := range names {
		obj := scope.Lookup(name)

		typeName, ok := obj.(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		id := ClassID{PkgPath: pkg.PkgPath, Name: name}
		if info, ok := c.processStruct(id, st); ok {
			c.report.Classes = append(c.report.Classes, info)
		}
	}
}

// processStruct classifies the darr-tagged fields of one struct. The
// second return is false when the struct carries no darr tags at all.
func (c *Checker) processStruct(id ClassID, st *types.Struct) (ClassInfo, bool) {
	info := ClassInfo{ID: id}
	tagged := false

	var (
		dataCount int
		nameCount int
	)

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		raw := reflect.StructTag(st.Tag(i)).Get(spec.TagKey)
		if raw == "" || raw == "-" {
			continue
		}

		tagged = true

		if !field.Exported() {
			c.diags.AddWarning("unexported_field",
				"darr tag on unexported field has no effect", id.String(), field.Name())
			continue
		}

		fi := c.processField(id, field.Name(), raw)
		info.Fields = append(info.Fields, fi)

		switch {
		case fi.Role.Intersects(tag.DATA):
			dataCount++
		case fi.Role.Intersects(tag.NAME):
			nameCount++
		}
	}

	if !tagged {
		return info, false
	}

	if dataCount == 0 {
		c.diags.AddError("no_data", "class declares no data fields", id.String(), "")
	}

	if nameCount > 1 {
		c.diags.AddError("multiple_names", "class declares more than one name field", id.String(), "")
	}

	return info, true
}

// processField parses one darr tag and runs the extractors over it.
func (c *Checker) processField(id ClassID, name, raw string) FieldInfo {
	fi := FieldInfo{Name: name, Tag: raw}

	parsed, err := hint.Parse(raw, nil)
	if err != nil {
		c.diags.AddError("bad_tag", err.Error(), id.String(), name)
		return fi
	}

	fi.HasDefault = parsed.HasDefault
	fi.Role = expr.Role(parsed.Expr, 0)

	if fi.Role == tag.OTHER {
		c.diags.AddError("no_role", "tag declares no role", id.String(), name)
		return fi
	}

	if fi.Dims, err = expr.Dims(parsed.Expr); err != nil {
		c.diags.AddError("bad_dims", err.Error(), id.String(), name)
	}

	if fi.Dtype, err = expr.Dtype(parsed.Expr); err != nil {
		c.diags.AddError("bad_dtype", err.Error(), id.String(), name)
	}

	if fi.Label, err = expr.Name(parsed.Expr, nil); err != nil {
		c.diags.AddError("bad_name", err.Error(), id.String(), name)
	}

	seen := map[string]struct{}{}

	for _, d := range fi.Dims {
		if _, ok := seen[d]; ok {
			c.diags.AddError("duplicate_dim", fmt.Sprintf("dimension %q repeats", d), id.String(), name)
			continue
		}

		seen[d] = struct{}{}
	}

	return fi
}

// checkDeferredRefs verifies that every coordof/dataof reference names a
// class found in the loaded set.
func (c *Checker) checkDeferredRefs() {
	known := map[string]struct{}{}
	for _, ci := range c.report.Classes {
		known[ci.ID.Name] = struct{}{}
	}

	for _, ci := range c.report.Classes {
		for _, fi := range ci.Fields {
			ref, ok := deferredRef(fi)
			if !ok || ref == "" {
				continue
			}

			if _, found := known[ref]; !found {
				c.diags.AddWarning("unknown_class",
					fmt.Sprintf("reference to class %q matches nothing in the loaded packages", ref),
					ci.ID.String(), fi.Name)
			}
		}
	}
}

// deferredRef re-parses the tag to recover the referenced class name.
func deferredRef(fi FieldInfo) (string, bool) {
	parsed, err := hint.Parse(fi.Tag, nil)
	if err != nil {
		return "", false
	}

	ref, ok := expr.Origin(parsed.Expr)
	if !ok {
		return "", false
	}

	return ref.Name, true
}
