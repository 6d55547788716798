package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
classes:
  - class: examples.Image
    fields:
      - field: DPI
        default: "300"
        dtype: int64
      - field: Data
        name: picture
        dims: [x, y]
      - field: X
        dims: x
    ignore:
      - Note
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Classes, 1)

	co := f.Classes[0]
	assert.Equal(t, "examples.Image", co.Class)
	require.Len(t, co.Fields, 3)
	assert.Equal(t, []string{"Note"}, co.Ignore)

	assert.Equal(t, "DPI", co.Fields[0].Field)
	assert.Equal(t, "300", co.Fields[0].Default)
	assert.Equal(t, "int64", co.Fields[0].Dtype)
	assert.False(t, co.Fields[0].HasDims)

	assert.Equal(t, "picture", co.Fields[1].Name)
	assert.Equal(t, DimList{"x", "y"}, co.Fields[1].Dims)
	assert.True(t, co.Fields[1].HasDims)

	// a bare string dims entry reads as a one-element list
	assert.Equal(t, DimList{"x"}, co.Fields[2].Dims)
}

func TestParseDefaultsVersion(t *testing.T) {
	f, err := Parse([]byte("classes: []"))
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("classes: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("classes:\n  - fields: {not: [a, mapping}"))
	assert.Error(t, err)
}

func TestLoadWriteRoundTrip(t *testing.T) {
	f := &File{
		Version: "1",
		Classes: []ClassOverlay{{
			Class: "Image",
			Fields: []FieldOverlay{
				{Field: "Data", Dims: DimList{"x", "y"}, HasDims: true},
			},
		}},
	}

	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Classes[0].Fields[0].Dims, loaded.Classes[0].Fields[0].Dims)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
