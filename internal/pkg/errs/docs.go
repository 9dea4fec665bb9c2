// Package errs provides standardized error types for the track ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound) for errors.Is classification
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() and Unwrap() methods
//
// Workflow-specific error kinds (authorization failures, state-transition conflicts,
// revision limits, rejected files) live next to the code that raises them, in the
// order domain package and the file policy service. This package holds only the
// generic validation and lookup errors shared across layers.
package errs
