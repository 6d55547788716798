// Package dtype resolves declared element types to the canonical data
// type names used by the labeled-array layer.
package dtype

import (
	"reflect"
	"time"
)

// Kind enumerates the supported element types.
type Kind int

const (
	_ Kind = iota // zero value is the invalid Kind

	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindDatetime

	// KindTotal is the total number of kinds defined.
	KindTotal = int(iota)
)

var kindNames = map[Kind]string{
	KindBool:     "bool",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindString:   "str",
	KindDatetime: "datetime64[ns]",
}

// Name returns the canonical data type name, e.g. "int64".
func (k Kind) Name() string {
	return kindNames[k]
}

// String returns the canonical name, or "Kind(0)" for the invalid Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Kind(0)"
}

// IsValid reports whether k is a defined kind.
func (k Kind) IsValid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k Kind) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

// Bits returns the width of a numeric kind in bits.
func (k Kind) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have a meaningful bit width, requested for: " + k.String())
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

// GoType returns the Go type that stores elements of kind k.
func (k Kind) GoType() reflect.Type {
	switch k {
	default:
		return nil
	case KindBool:
		return reflect.TypeOf(false)
	case KindInt8:
		return reflect.TypeOf(int8(0))
	case KindInt16:
		return reflect.TypeOf(int16(0))
	case KindInt32:
		return reflect.TypeOf(int32(0))
	case KindInt64:
		return reflect.TypeOf(int64(0))
	case KindUint8:
		return reflect.TypeOf(uint8(0))
	case KindUint16:
		return reflect.TypeOf(uint16(0))
	case KindUint32:
		return reflect.TypeOf(uint32(0))
	case KindUint64:
		return reflect.TypeOf(uint64(0))
	case KindFloat32:
		return reflect.TypeOf(float32(0))
	case KindFloat64:
		return reflect.TypeOf(float64(0))
	case KindString:
		return reflect.TypeOf("")
	case KindDatetime:
		return reflect.TypeOf(time.Time{})
	}
}

// FromReflectType returns the kind that stores values of rtype, or the
// invalid Kind when rtype has no element-type counterpart. Platform-width
// integers resolve to their 64-bit kinds.
func FromReflectType(rtype reflect.Type) Kind {
	if rtype == nil {
		return 0
	}

	if rtype == reflect.TypeOf(time.Time{}) {
		return KindDatetime
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int64:
		return KindInt64
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Uint, reflect.Uint64:
		return KindUint64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.String:
		return KindString
	}
}
