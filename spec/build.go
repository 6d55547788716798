package spec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"darray/dtype"
	"darray/expr"
	"darray/hint"
	"darray/internal/common"
	"darray/tag"
)

// TagKey is the struct tag key holding a field's type expression.
const TagKey = "darr"

var (
	// ErrNotStruct reports an input with no declared-field registry.
	ErrNotStruct = errors.New("not a struct or a pointer to struct")

	// ErrNoData reports a class with no data-role field.
	ErrNoData = errors.New("no data-role field declared")

	// ErrMultipleNames reports a class with more than one name-role
	// field.
	ErrMultipleNames = errors.New("more than one name-role field declared")

	// ErrBadDefault reports a default= literal that does not parse as the
	// declared data type.
	ErrBadDefault = errors.New("invalid default value")
)

// FromStruct builds the specification of v's type. v may be a struct
// value, a pointer to one, or a reflect.Type. Results are memoized in the
// default cache.
func FromStruct(v any) (Spec, error) {
	return DefaultCache.FromStruct(v)
}

// FromStruct builds the specification of v's type through the cache.
func (c *Cache) FromStruct(v any) (Spec, error) {
	rt, err := structType(v)
	if err != nil {
		return Spec{}, err
	}

	return c.FromType(rt)
}

func structType(v any) (reflect.Type, error) {
	rt, ok := v.(reflect.Type)
	if !ok {
		rt = reflect.TypeOf(v)
	}

	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, reflect.TypeOf(v))
	}

	return rt, nil
}

// buildType derives a specification from a struct type. Fields without a
// role (untagged, or tagged outside the role bounds) are dropped.
func buildType(rt reflect.Type, c *Cache) (Spec, error) {
	if rt.Kind() != reflect.Struct {
		return Spec{}, fmt.Errorf("%w: %s", ErrNotStruct, rt)
	}

	fields := Specs{}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		raw, ok := sf.Tag.Lookup(TagKey)
		if !ok || raw == "" || raw == "-" {
			continue
		}

		parsed, err := hint.Parse(raw, resolverFor(sf.Type))
		if err != nil {
			return Spec{}, fmt.Errorf("field %s.%s: %w", rt.Name(), sf.Name, err)
		}

		fs, err := convertField(sf, parsed, c)
		if err != nil {
			return Spec{}, fmt.Errorf("field %s.%s: %w", rt.Name(), sf.Name, err)
		}

		if fs != nil {
			fields = append(fields, *fs)
		}
	}

	if common.IsEmpty(fields.OfData()) {
		return Spec{}, fmt.Errorf("%s: %w", rt.Name(), ErrNoData)
	}

	if common.IsMultiple(fields.OfName()) {
		return Spec{}, fmt.Errorf("%s: %w", rt.Name(), ErrMultipleNames)
	}

	return Spec{Fields: fields, Origin: rt}, nil
}

// resolverFor resolves class references against the declaring field's own
// type, the Go counterpart of a class-namespace forward reference.
func resolverFor(ft reflect.Type) hint.Resolver {
	base := ft
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	return func(name string) (reflect.Type, bool) {
		if base.Kind() != reflect.Struct {
			return nil, false
		}

		if name != "" && name != base.Name() {
			return nil, false
		}

		return base, true
	}
}

func convertField(sf reflect.StructField, parsed hint.Parsed, c *Cache) (*FieldSpec, error) {
	role := expr.Role(parsed.Expr, tag.OTHER)
	if role == tag.OTHER {
		return nil, nil
	}

	name, err := expr.Name(parsed.Expr, nil)
	if err != nil {
		return nil, err
	}

	named := name != nil
	if !named {
		name = sf.Name
	}

	dims, err := expr.Dims(parsed.Expr)
	if err != nil {
		return nil, err
	}

	dt, err := expr.Dtype(parsed.Expr)
	if err != nil {
		return nil, err
	}

	fs := &FieldSpec{
		ID:      sf.Name,
		Name:    name,
		Role:    role,
		Type:    parsed.Expr,
		Dims:    dims,
		Dtype:   dt,
		Default: MISSING,
	}

	if ref, ok := expr.Origin(parsed.Expr); ok {
		if err := fillFromOrigin(fs, ref, named, c); err != nil {
			return nil, err
		}
	}

	if parsed.HasDefault {
		def, err := ParseLiteral(parsed.Default, fs.Dtype)
		if err != nil {
			return nil, err
		}

		fs.Default = def
	}

	return fs, nil
}

// fillFromOrigin copies dims and dtype from the nested specification's
// first data field. Unless the referring tag declared a name itself, the
// name declared on that data field wins, then the nested name spec's
// default.
func fillFromOrigin(fs *FieldSpec, ref expr.Ref, named bool, c *Cache) error {
	nested, err := c.FromType(ref.Type)
	if err != nil {
		return err
	}

	data := nested.Fields.OfData()[0]
	fs.Origin = ref.Type
	fs.Dims = data.Dims
	fs.Dtype = data.Dtype

	if named {
		return nil
	}

	if n, err := expr.Name(data.Type, nil); err == nil && n != nil {
		fs.Name = n
		return nil
	}

	if ns, ok := common.First(nested.Fields.OfName()); ok && ns.Default != MISSING {
		fs.Name = ns.Default
	}

	return nil
}

// ParseLiteral interprets a literal as the declared data type.
// Without a declared type the literal stays a string.
func ParseLiteral(raw, dtypeName string) (any, error) {
	if dtypeName == "" {
		return raw, nil
	}

	k, err := dtype.FromName(dtypeName)
	if err != nil {
		return nil, err
	}

	switch {
	case k == dtype.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
		}

		return v, nil

	case k.IsInteger() && k.IsSigned():
		v, err := strconv.ParseInt(raw, 10, k.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
		}

		return reflect.ValueOf(v).Convert(k.GoType()).Interface(), nil

	case k.IsInteger():
		v, err := strconv.ParseUint(raw, 10, k.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
		}

		return reflect.ValueOf(v).Convert(k.GoType()).Interface(), nil

	case k.IsFloat():
		v, err := strconv.ParseFloat(raw, k.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
		}

		return reflect.ValueOf(v).Convert(k.GoType()).Interface(), nil

	case k == dtype.KindString:
		return raw, nil

	case k == dtype.KindDatetime:
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
		}

		return v, nil
	}

	return nil, fmt.Errorf("%w: %q as %s", ErrBadDefault, raw, dtypeName)
}
