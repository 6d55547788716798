package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNil(t *testing.T) {
	res := Validate(nil)
	assert.True(t, res.HasErrors())
}

func TestValidateClean(t *testing.T) {
	f, err := Parse([]byte(`
classes:
  - class: Image
    fields:
      - field: DPI
        dtype: int64
        default: "300"
      - field: Data
        dims: [x, y]
`))
	require.NoError(t, err)

	res := Validate(f)
	assert.True(t, res.IsValid())
	assert.NoError(t, res.Error())
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{
			"duplicate class",
			"classes:\n  - class: Image\n    fields: [{field: A, dtype: int64}]\n  - class: image\n    fields: [{field: A, dtype: int64}]",
			"duplicate_class",
		},
		{
			"unnamed class",
			"classes:\n  - fields: [{field: A}]",
			"class_unnamed",
		},
		{
			"duplicate field",
			"classes:\n  - class: Image\n    fields: [{field: DPI}, {field: dpi}]",
			"duplicate_field",
		},
		{
			"unnamed field",
			"classes:\n  - class: Image\n    fields: [{dtype: int64}]",
			"field_unnamed",
		},
		{
			"unknown dtype",
			"classes:\n  - class: Image\n    fields: [{field: A, dtype: object}]",
			"unknown_dtype",
		},
		{
			"bad default",
			"classes:\n  - class: Image\n    fields: [{field: A, dtype: int64, default: many}]",
			"bad_default",
		},
		{
			"repeated dim",
			"classes:\n  - class: Image\n    fields: [{field: A, dims: [x, x]}]",
			"duplicate_dim",
		},
		{
			"ignored and overridden",
			"classes:\n  - class: Image\n    fields: [{field: A}]\n    ignore: [A]",
			"ignored_and_overridden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			res := Validate(f)
			require.True(t, res.HasErrors())
			assert.Equal(t, tt.code, res.Errors[0].Code)
		})
	}
}
