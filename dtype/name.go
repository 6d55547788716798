package dtype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown reports a declared type name with no kind counterpart.
var ErrUnknown = errors.New("unknown data type name")

// aliases maps accepted type-name spellings to kinds. Go spellings,
// NumPy-style spellings, and single-character size codes are all
// accepted; the byte-order prefixes "<", ">" and "|" are stripped before
// lookup.
var aliases = map[string]Kind{
	"bool": KindBool,
	"b1":   KindBool,

	"int":   KindInt64,
	"int8":  KindInt8,
	"int16": KindInt16,
	"int32": KindInt32,
	"int64": KindInt64,
	"i1":    KindInt8,
	"i2":    KindInt16,
	"i4":    KindInt32,
	"i8":    KindInt64,
	"rune":  KindInt32,

	"uint":   KindUint64,
	"uint8":  KindUint8,
	"uint16": KindUint16,
	"uint32": KindUint32,
	"uint64": KindUint64,
	"u1":     KindUint8,
	"u2":     KindUint16,
	"u4":     KindUint32,
	"u8":     KindUint64,
	"byte":   KindUint8,

	"float":   KindFloat64,
	"float32": KindFloat32,
	"float64": KindFloat64,
	"double":  KindFloat64,
	"f4":      KindFloat32,
	"f8":      KindFloat64,

	"str":    KindString,
	"string": KindString,

	"datetime64":     KindDatetime,
	"datetime64[ns]": KindDatetime,
	"M8[ns]":         KindDatetime,
}

// FromName resolves a declared type name to its kind.
func FromName(name string) (Kind, error) {
	trimmed := strings.TrimLeft(name, "<>|")

	if k, ok := aliases[trimmed]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// CanonicalName resolves a declared type name to the canonical name used
// by the labeled-array layer, e.g. "int" to "int64".
func CanonicalName(name string) (string, error) {
	k, err := FromName(name)
	if err != nil {
		return "", err
	}

	return k.Name(), nil
}
