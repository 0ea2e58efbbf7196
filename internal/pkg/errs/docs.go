// Package errs provides standardized error types for the order lifecycle
// service. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package covers two groups of errors:
//
// Generic parameter errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: an object cannot be found
//
// Order lifecycle errors:
//   - ValidationError: field-level submission failures, all collected in one pass
//   - TenantMismatchError: the actor may not act for the claimed restaurant
//   - InvalidTransitionError: a status change the state machine forbids
//   - ConcurrentModificationError: an optimistic version check failed
//   - UpstreamFailureError: an external collaborator failed after retries
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where applicable
//   - Error() for formatting and Unwrap() for errors.Is classification
package errs
