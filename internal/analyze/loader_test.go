package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darray/tag"
)

func TestCheckExamples(t *testing.T) {
	report, diags, err := NewChecker().Check("darray/examples/...")
	require.NoError(t, err)
	require.True(t, diags.IsValid(), "unexpected findings: %v", diags.Errors)

	img := report.Class("Image")
	require.NotNil(t, img)
	require.Len(t, img.Fields, 5)

	data := img.Fields[0]
	assert.Equal(t, "Data", data.Name)
	assert.True(t, data.Role.Intersects(tag.DATA))
	assert.Equal(t, []string{"x", "y"}, data.Dims)
	assert.Equal(t, "float64", data.Dtype)
	assert.Equal(t, "image", data.Label)

	require.NotNil(t, report.Class("ColorImage"))
	require.NotNil(t, report.Class("XAxis"))
	require.NotNil(t, report.Class("Station"))
}

func TestCheckBadTags(t *testing.T) {
	_, diags, err := NewChecker().Check("./testdata/badtags")
	require.NoError(t, err)
	require.True(t, diags.HasErrors())

	codes := map[string][]string{}
	for _, d := range diags.Errors {
		codes[d.Code] = append(codes[d.Code], d.Class+"/"+d.Field)
	}

	assert.Contains(t, codes, "bad_tag")
	assert.Contains(t, codes, "no_data")
	assert.Contains(t, codes, "multiple_names")
	assert.Contains(t, codes, "bad_dtype")
	assert.Contains(t, codes, "duplicate_dim")
	assert.Contains(t, codes, "no_role")

	var warnCodes []string
	for _, d := range diags.Warnings {
		warnCodes = append(warnCodes, d.Code)
	}

	assert.Contains(t, warnCodes, "unknown_class")
	assert.Contains(t, warnCodes, "unexported_field")
}

func TestCheckSkipsUntaggedStructs(t *testing.T) {
	report, _, err := NewChecker().Check("darray/labeled")
	require.NoError(t, err)
	assert.Empty(t, report.Classes)
}

func TestReportClassMiss(t *testing.T) {
	r := &Report{}
	assert.Nil(t, r.Class("Nope"))
}

func TestClassInfoString(t *testing.T) {
	ci := ClassInfo{
		ID: ClassID{PkgPath: "darray/examples/image", Name: "Image"},
		Fields: []FieldInfo{{
			Name:  "Data",
			Role:  tag.DATA,
			Dims:  []string{"x", "y"},
			Dtype: "float64",
			Label: "image",
		}},
	}

	out := ci.String()
	assert.Contains(t, out, "darray/examples/image.Image")
	assert.Contains(t, out, "Data <data> dims=(x, y) dtype=float64 name=image")
}
