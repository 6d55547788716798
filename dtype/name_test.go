package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		// Go spellings
		{"int", KindInt64},
		{"int32", KindInt32},
		{"uint", KindUint64},
		{"byte", KindUint8},
		{"rune", KindInt32},
		{"float64", KindFloat64},
		{"string", KindString},
		{"bool", KindBool},

		// short size codes
		{"i1", KindInt8},
		{"i8", KindInt64},
		{"u1", KindUint8},
		{"f4", KindFloat32},
		{"f8", KindFloat64},
		{"b1", KindBool},

		// byte-order prefixes are stripped
		{"<i8", KindInt64},
		{">u4", KindUint32},
		{"|u1", KindUint8},
		{"<f8", KindFloat64},

		// datetimes
		{"datetime64", KindDatetime},
		{"datetime64[ns]", KindDatetime},
		{"M8[ns]", KindDatetime},
		{"<M8[ns]", KindDatetime},

		// widening aliases
		{"float", KindFloat64},
		{"double", KindFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := FromName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}
}

func TestFromNameUnknown(t *testing.T) {
	for _, name := range []string{"", "complex128", "object", "Int64", "int129"} {
		_, err := FromName(name)
		assert.ErrorIs(t, err, ErrUnknown, name)
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int", "int64"},
		{"i4", "int32"},
		{"<f8", "float64"},
		{"string", "str"},
		{"M8[ns]", "datetime64[ns]"},
		{"float64", "float64"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, err := CanonicalName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}
