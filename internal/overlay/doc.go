// Package overlay loads YAML overlay files that pin or override field
// metadata of tagged classes: rename, re-dim, re-dtype, replace the
// default value, or ignore a field altogether.
//
// Overlays are matched loosely: class and field identifiers are
// normalized (case-folded, separators stripped, CamelCase flattened)
// before comparison, so "color_image" in YAML matches a ColorImage
// struct.
package overlay
