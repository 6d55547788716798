// Package analyze provides static checking of darr-tagged structs.
//
// It uses golang.org/x/tools/go/packages with go/types to find struct
// types carrying darr tags, parses every tag without executing user
// code, and reports malformed expressions, dimensions and data types
// as structured diagnostics.
//
// Key types:
//   - ClassID: package import path + struct name
//   - ClassInfo: one tagged struct with its classified fields
//   - Report: all classes found plus accumulated diagnostics
package analyze
