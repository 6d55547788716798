// Package tag defines the closed set of labels that classify what a declared
// field or a part of its type expression means.
package tag

import "strings"

// Tag is a bitmask of field and option labels. Tags attached to a type
// expression decide how the spec builder treats the declared field.
type Tag int

const (
	ATTR Tag = 1 << iota // attribute-intended type
	COORD
	DATA
	NAME
	DIMS     // marks the dimensions slot of an array-like type
	DTYPE    // marks the element-type slot of an array-like type
	MULTIPLE // marks a mapping spread into multiple entries
	ORIGIN   // marks a reference to another specified class

	// FIELD is the union of array- and attribute-intended labels.
	FIELD = ATTR | COORD | DATA

	// OPTION is the union of structural option labels.
	OPTION = DIMS | DTYPE | MULTIPLE | ORIGIN

	// ANY is the union of all field and option labels.
	ANY = FIELD | OPTION

	// OTHER is the empty tag, meaning an untagged or unclassified field.
	OTHER Tag = 0
)

var names = []struct {
	bit  Tag
	name string
}{
	{ATTR, "attr"},
	{COORD, "coord"},
	{DATA, "data"},
	{NAME, "name"},
	{DIMS, "dims"},
	{DTYPE, "dtype"},
	{MULTIPLE, "multiple"},
	{ORIGIN, "origin"},
}

// Union folds tags into a single tag by bitwise or.
// An empty iterable yields OTHER.
func Union(tags []Tag) Tag {
	out := OTHER
	for _, t := range tags {
		out |= t
	}

	return out
}

// Creates reports whether obj is a Tag value.
func Creates(obj any) bool {
	_, ok := obj.(Tag)
	return ok
}

// Intersects reports whether the two tags share at least one label.
func (t Tag) Intersects(u Tag) bool {
	return t&u != 0
}

// Annotates reports whether any Tag found among metadata intersects t.
// Non-tag metadata objects are ignored.
func (t Tag) Annotates(meta ...any) bool {
	for _, m := range meta {
		if u, ok := m.(Tag); ok && t.Intersects(u) {
			return true
		}
	}

	return false
}

// String returns the bracket-style representation, e.g. "<attr>" or
// "<coord|data>". OTHER prints as "<other>".
func (t Tag) String() string {
	if t == OTHER {
		return "<other>"
	}

	var parts []string
	for _, n := range names {
		if t.Intersects(n.bit) {
			parts = append(parts, n.name)
		}
	}

	if len(parts) == 0 {
		return "<invalid>"
	}

	return "<" + strings.Join(parts, "|") + ">"
}
