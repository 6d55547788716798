package spec

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darray/expr"
	"darray/tag"
)

type Image struct {
	Data [][]float64 `darr:"data((x, y), float64, name='image')"`
	X    []int64     `darr:"coord(x, int64)"`
	Y    []int64     `darr:"coord(y, int64)"`
	DPI  int         `darr:"attr(int64, default=100)"`
	Note string
}

func TestFromStruct(t *testing.T) {
	sp, err := FromStruct(Image{})
	require.NoError(t, err)

	require.Len(t, sp.Fields, 4) // untagged Note is dropped
	assert.Equal(t, reflect.TypeOf(Image{}), sp.Origin)

	data := sp.Fields.OfData()
	require.Len(t, data, 1)
	assert.Equal(t, "Data", data[0].ID)
	assert.Equal(t, "image", data[0].Name)
	assert.Equal(t, []string{"x", "y"}, data[0].Dims)
	assert.Equal(t, "float64", data[0].Dtype)
	assert.Equal(t, MISSING, data[0].Default)

	coords := sp.Fields.OfCoord()
	require.Len(t, coords, 2)
	assert.Equal(t, "X", coords[0].ID)
	assert.Equal(t, "X", coords[0].Name) // field name fallback
	assert.Equal(t, []string{"x"}, coords[0].Dims)
	assert.Equal(t, "int64", coords[0].Dtype)
	assert.Equal(t, "Y", coords[1].ID)

	attrs := sp.Fields.OfAttr()
	require.Len(t, attrs, 1)
	assert.Equal(t, "DPI", attrs[0].ID)
	assert.Equal(t, int64(100), attrs[0].Default)
}

func TestFromStructOrder(t *testing.T) {
	sp, err := FromStruct(Image{})
	require.NoError(t, err)

	var ids []string
	for _, f := range sp.Fields {
		ids = append(ids, f.ID)
	}

	assert.Equal(t, []string{"Data", "X", "Y", "DPI"}, ids)
}

func TestFromStructAcceptsPointersAndTypes(t *testing.T) {
	byValue, err := FromStruct(Image{})
	require.NoError(t, err)

	byPointer, err := FromStruct(&Image{})
	require.NoError(t, err)
	assert.Equal(t, byValue.Origin, byPointer.Origin)

	byType, err := FromStruct(reflect.TypeOf(Image{}))
	require.NoError(t, err)
	assert.Equal(t, byValue.Origin, byType.Origin)
}

func TestFromStructNotStruct(t *testing.T) {
	_, err := FromStruct(42)
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = FromStruct(nil)
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestFromStructNoData(t *testing.T) {
	type OnlyCoord struct {
		X []int64 `darr:"coord(x, int64)"`
	}

	_, err := FromStruct(OnlyCoord{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFromStructMultipleNames(t *testing.T) {
	type TwoNames struct {
		Data []float64 `darr:"data(x, float64)"`
		A    string    `darr:"name(str)"`
		B    string    `darr:"name(str)"`
	}

	_, err := FromStruct(TwoNames{})
	assert.ErrorIs(t, err, ErrMultipleNames)
}

func TestFromStructSkipsDashAndEmptyTags(t *testing.T) {
	type Skipped struct {
		Data []float64 `darr:"data(x, float64)"`
		Skip []float64 `darr:"-"`
		None []float64
	}

	sp, err := FromStruct(Skipped{})
	require.NoError(t, err)
	assert.Len(t, sp.Fields, 1)
}

func TestFromStructUnionFirstWins(t *testing.T) {
	type Scalar struct {
		Data []float64 `darr:"data(x, float64)"`
		X    int64     `darr:"coord(x, int32) | int"`
	}

	sp, err := FromStruct(Scalar{})
	require.NoError(t, err)

	coords := sp.Fields.OfCoord()
	require.Len(t, coords, 1)
	assert.Equal(t, "int32", coords[0].Dtype)
	assert.Equal(t, []string{"x"}, coords[0].Dims)
}

func TestFromStructBadTag(t *testing.T) {
	type Broken struct {
		Data []float64 `darr:"data((x, float64)"`
	}

	_, err := FromStruct(Broken{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken.Data")
}

func TestFromStructBadDefault(t *testing.T) {
	type Bad struct {
		Data []float64 `darr:"data(x, float64)"`
		X    int64     `darr:"coord(x, int64, default=many)"`
	}

	_, err := FromStruct(Bad{})
	assert.ErrorIs(t, err, ErrBadDefault)
}

type PixelAxis struct {
	Data  []int64 `darr:"data(x, int64, name='pixel')"`
	Units string  `darr:"attr(str, default=px)"`
}

type Stacked struct {
	Data [][]float64 `darr:"data((x, y), float64)"`
	X    PixelAxis   `darr:"coordof(PixelAxis)"`
}

func TestFromStructNested(t *testing.T) {
	sp, err := FromStruct(Stacked{})
	require.NoError(t, err)

	coords := sp.Fields.OfCoord()
	require.Len(t, coords, 1)

	// dims, dtype and name come from the nested data field
	assert.Equal(t, reflect.TypeOf(PixelAxis{}), coords[0].Origin)
	assert.Equal(t, []string{"x"}, coords[0].Dims)
	assert.Equal(t, "int64", coords[0].Dtype)
	assert.Equal(t, "pixel", coords[0].Name)
}

func TestFromStructNestedExplicitNameWins(t *testing.T) {
	type Renamed struct {
		Data [][]float64 `darr:"data((x, y), float64)"`
		X    PixelAxis   `darr:"coordof(PixelAxis, name=col)"`
	}

	sp, err := FromStruct(Renamed{})
	require.NoError(t, err)

	coords := sp.Fields.OfCoord()
	require.Len(t, coords, 1)
	assert.Equal(t, "col", coords[0].Name)
	assert.Equal(t, []string{"x"}, coords[0].Dims)
}

func TestFromStructNestedWrongClass(t *testing.T) {
	type Wrong struct {
		Data [][]float64 `darr:"data((x, y), float64)"`
		X    PixelAxis   `darr:"coordof(OtherAxis)"`
	}

	_, err := FromStruct(Wrong{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OtherAxis")
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		raw      string
		dtype    string
		expected any
	}{
		{"on", "", "on"}, // no declared type keeps the string
		{"1", "int64", int64(1)},
		{"-3", "int32", int32(-3)},
		{"7", "uint8", uint8(7)},
		{"2.5", "float64", 2.5},
		{"true", "bool", true},
		{"px", "str", "px"},
		{"2026-08-29T00:00:00Z", "datetime64[ns]", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw+"_"+tt.dtype, func(t *testing.T) {
			v, err := ParseLiteral(tt.raw, tt.dtype)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseLiteralBad(t *testing.T) {
	_, err := ParseLiteral("many", "int64")
	assert.ErrorIs(t, err, ErrBadDefault)

	_, err = ParseLiteral("1", "object")
	assert.Error(t, err)
}

func TestSpecUpdate(t *testing.T) {
	sp, err := FromStruct(Image{})
	require.NoError(t, err)

	img := Image{
		Data: [][]float64{{1, 2}, {3, 4}},
		X:    []int64{0, 1},
		Y:    []int64{0, 1},
		DPI:  300,
	}

	up, err := sp.Update(img)
	require.NoError(t, err)

	assert.Equal(t, img.Data, up.Fields.OfData()[0].Default)
	assert.Equal(t, img.X, up.Fields.OfCoord()[0].Default)
	assert.Equal(t, 300, up.Fields.OfAttr()[0].Default)

	// the original spec is untouched
	assert.Equal(t, MISSING, sp.Fields.OfData()[0].Default)
	assert.Equal(t, int64(100), sp.Fields.OfAttr()[0].Default)
}

func TestSpecUpdateKeepsDefaultsForAbsentFields(t *testing.T) {
	sp, err := FromStruct(Image{})
	require.NoError(t, err)

	up, err := sp.Update(struct{}{})
	require.NoError(t, err)

	assert.Equal(t, int64(100), up.Fields.OfAttr()[0].Default)
	assert.Equal(t, MISSING, up.Fields.OfData()[0].Default)
}

func TestSpecUpdateZeroValueTakesDefault(t *testing.T) {
	up, err := mustSpec(t).Update(Image{Data: [][]float64{{1}}})
	require.NoError(t, err)

	// DPI is zero on the instance, so the declared default applies
	assert.Equal(t, int64(100), up.Fields.OfAttr()[0].Default)
}

func mustSpec(t *testing.T) Spec {
	t.Helper()

	sp, err := FromStruct(Image{})
	require.NoError(t, err)

	return sp
}

func TestUpdateNameTemplate(t *testing.T) {
	type Sensor struct {
		Data    []float64 `darr:"data(time, float64, name='ch-{{.Channel}}')"`
		Channel int
	}

	sp, err := FromStruct(Sensor{})
	require.NoError(t, err)

	up, err := sp.Update(Sensor{Channel: 5})
	require.NoError(t, err)
	assert.Equal(t, "ch-5", up.Fields.OfData()[0].Name)

	// the zero value renders too
	upDefault, err := sp.Update(Sensor{})
	require.NoError(t, err)
	assert.Equal(t, "ch-0", upDefault.Fields.OfData()[0].Name)
}

func TestUpdateTupleName(t *testing.T) {
	type Band struct {
		Data  []float64 `darr:"data(x, float64, name=(band, '{{.Label}}'))"`
		Label string
	}

	sp, err := FromStruct(Band{})
	require.NoError(t, err)
	assert.Equal(t, expr.NameTuple{"band", "{{.Label}}"}, sp.Fields.OfData()[0].Name)

	up, err := sp.Update(Band{Label: "red"})
	require.NoError(t, err)
	assert.Equal(t, expr.NameTuple{"band", "red"}, up.Fields.OfData()[0].Name)
}

func TestCacheReuses(t *testing.T) {
	c := NewCache()

	first, err := c.FromStruct(Image{})
	require.NoError(t, err)

	second, err := c.FromStruct(Image{})
	require.NoError(t, err)

	// same backing slice: built once, recalled after
	assert.Same(t, &first.Fields[0], &second.Fields[0])
}

func TestCacheDoesNotPublishFailures(t *testing.T) {
	type Broken struct {
		Data []float64 `darr:"data(x, float64, default=oops)"`
	}

	c := NewCache()

	_, err := c.FromStruct(Broken{})
	require.Error(t, err)

	// still failing: nothing partial was cached
	_, err = c.FromStruct(Broken{})
	assert.Error(t, err)
}

func TestCacheZeroValue(t *testing.T) {
	var c Cache

	_, err := c.FromStruct(Image{})
	assert.NoError(t, err)
}

func TestSpecsFilters(t *testing.T) {
	s := Specs{
		{ID: "A", Role: tag.ATTR},
		{ID: "B", Role: tag.ATTR | tag.MULTIPLE},
		{ID: "C", Role: tag.COORD},
		{ID: "D", Role: tag.DATA},
		{ID: "N", Role: tag.NAME},
	}

	assert.Len(t, s.OfAttr(), 2)
	assert.Len(t, s.OfCoord(), 1)
	assert.Len(t, s.OfData(), 1)
	assert.Len(t, s.OfName(), 1)
	assert.Equal(t, "B", s.OfAttr()[1].ID)
}

func TestMissingString(t *testing.T) {
	assert.Equal(t, "<missing>", MISSING.String())
}
