// Package diagnostic provides structured findings for the static tag
// checker.
//
// Key capabilities:
//   - Per-class, per-field messages with a stable code
//   - Severity levels (info, warning, error)
//   - Aggregation across packages and rendering for the CLI
package diagnostic
