// Package errs provides standardized error types for the delivery engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for common failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value fell outside its allowed bounds
//   - ObjectNotFoundError: a requested object does not exist
//   - ConflictError: an optimistic conditional write lost a race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Business outcomes that are not infrastructure failures (invalid transition,
// no courier available, no active session, already settled) are declared as
// sentinels next to the domain code that produces them.
package errs
