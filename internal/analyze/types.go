package analyze

import (
	"fmt"
	"strings"

	"darray/tag"
)

// ClassID uniquely identifies a tagged struct by package path and name.
type ClassID struct {
	PkgPath string // e.g. "darray/examples"
	Name    string // e.g. "Image"
}

// String returns a human-readable representation of the ClassID.
func (c ClassID) String() string {
	if c.PkgPath == "" {
		return c.Name
	}

	return c.PkgPath + "." + c.Name
}

// ClassInfo describes one struct carrying darr tags.
type ClassInfo struct {
	ID     ClassID
	Fields []FieldInfo
}

// FieldInfo describes one tagged field after static classification.
type FieldInfo struct {
	// Name is the Go field name.
	Name string
	// Tag is the raw darr tag text.
	Tag string
	// Role is the classified role bit, or zero when the tag failed to
	// parse.
	Role tag.Tag
	// Dims are the declared dimensions, nil when the role carries none.
	Dims []string
	// Dtype is the canonical data type name, empty when undeclared.
	Dtype string
	// Label is the declared name metadata, nil when undeclared.
	Label any
	// HasDefault reports whether the tag carries a default literal.
	HasDefault bool
}

// String renders a one-line field summary for listings.
func (f FieldInfo) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s", f.Name, f.Role)

	if f.Dims != nil {
		fmt.Fprintf(&b, " dims=(%s)", strings.Join(f.Dims, ", "))
	}

	if f.Dtype != "" {
		fmt.Fprintf(&b, " dtype=%s", f.Dtype)
	}

	if f.Label != nil {
		fmt.Fprintf(&b, " name=%v", f.Label)
	}

	return b.String()
}

// String renders a class with its fields, one per line.
func (c ClassInfo) String() string {
	var b strings.Builder

	fmt.Fprintln(&b, c.ID.String())

	for _, f := range c.Fields {
		fmt.Fprintf(&b, "  %s\n", f)
	}

	return b.String()
}

// Report holds every tagged class found plus the accumulated findings.
type Report struct {
	Classes []ClassInfo
}

// Class returns the info for a class by name, or nil if not found.
func (r *Report) Class(name string) *ClassInfo {
	for i := range r.Classes {
		if r.Classes[i].ID.Name == name {
			return &r.Classes[i]
		}
	}

	return nil
}
