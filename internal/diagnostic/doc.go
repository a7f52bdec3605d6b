// Package diagnostic provides structured warnings, errors, and
// skip explanations for the bridge generator.
//
// Key capabilities:
//   - Unbridgeable type and member reports with stable codes
//   - Degraded-reference reports at the referencing member
//   - Deterministic ordering for golden output comparison
package diagnostic
