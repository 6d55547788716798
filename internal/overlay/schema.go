package overlay

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML overlay definition file.
// This is the authoritative, human-reviewed override configuration.
type File struct {
	// Version of the overlay schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Classes is a list of per-class overrides.
	Classes []ClassOverlay `yaml:"classes"`
}

// ClassOverlay defines overrides for one tagged struct.
type ClassOverlay struct {
	// Class identifies the struct (e.g. "ColorImage" or "examples.ColorImage").
	Class string `yaml:"class"`

	// Fields defines explicit per-field overrides.
	Fields []FieldOverlay `yaml:"fields,omitempty"`

	// Ignore lists fields that should be dropped from the class.
	Ignore []string `yaml:"ignore,omitempty"`
}

// FieldOverlay overrides the metadata of a single field. Empty entries
// leave the corresponding piece untouched.
type FieldOverlay struct {
	// Field is the struct field identifier.
	Field string `yaml:"field"`

	// Name replaces the declared label.
	Name string `yaml:"name,omitempty"`

	// Dims replaces the declared dimensions.
	Dims DimList `yaml:"dims,omitempty"`

	// Dtype replaces the declared data type.
	Dtype string `yaml:"dtype,omitempty"`

	// Default replaces the declared default value, written as a literal
	// of the (possibly overridden) data type.
	Default string `yaml:"default,omitempty"`

	// HasDims distinguishes "no override" from an explicit empty list.
	HasDims bool `yaml:"-"`
}

// DimList is a dimension list that can be unmarshaled from either a
// single string or an array of strings.
type DimList []string

// UnmarshalYAML implements custom YAML unmarshaling for DimList.
func (d *DimList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*d = DimList{str}
		} else {
			*d = DimList{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*d = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for DimList.
// Outputs a single string if length is 1, otherwise an array.
func (d DimList) MarshalYAML() (any, error) {
	if len(d) == 1 {
		return d[0], nil
	}

	return []string(d), nil
}

// UnmarshalYAML tracks whether a dims key was present at all, so an
// explicit empty list can override to a scalar field.
func (f *FieldOverlay) UnmarshalYAML(node *yaml.Node) error {
	type plain FieldOverlay

	var p plain

	if err := node.Decode(&p); err != nil {
		return err
	}

	*f = FieldOverlay(p)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "dims" {
			f.HasDims = true
		}
	}

	return nil
}
