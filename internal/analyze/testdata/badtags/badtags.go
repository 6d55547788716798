// Package badtags is a checker fixture: every class here carries at
// least one defective darr tag.
package badtags

// Malformed has a tag that does not parse.
type Malformed struct {
	Data []float64 `darr:"data((x, float64)"`
}

// NoData declares coordinates without any data field.
type NoData struct {
	X []int64 `darr:"coord(x, int64)"`
}

// TwoNames declares two name fields.
type TwoNames struct {
	Data []float64 `darr:"data(x, float64)"`
	A    string    `darr:"name(str)"`
	B    string    `darr:"name(str)"`
}

// BadDtype declares an element type nobody recognizes.
type BadDtype struct {
	Data []float64 `darr:"data(x, object)"`
}

// RepeatedDim declares the same dimension twice.
type RepeatedDim struct {
	Data [][]float64 `darr:"data((x, x), float64)"`
}

// Dangling defers to a class that is not in this package.
type Dangling struct {
	Data []float64 `darr:"data(x, float64)"`
	X    []int64   `darr:"coordof(GhostAxis)"`
}

// RoleLess carries a tag that is a bare type with no role.
type RoleLess struct {
	Data []float64 `darr:"data(x, float64)"`
	V    int       `darr:"int"`
}

// Hidden tags an unexported field.
type Hidden struct {
	Data   []float64 `darr:"data(x, float64)"`
	secret string    `darr:"attr(str)"`
}
