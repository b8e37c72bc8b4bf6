// Package errs provides standardized error types for the order-management core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic validation errors (ValueIsRequiredError,
// ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError) and the
// order-lifecycle error kinds surfaced to API callers:
//   - ForbiddenError: the acting role is not authorized for the action
//   - NotClaimedError: a department gate was not satisfied
//   - AlreadyClaimedError: a claim race was lost to another actor
//   - InvalidTransitionError: the requested status edge does not exist
//   - ConflictError: a concurrent writer won; reload and retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrAlreadyClaimed)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, enabling errors.Is classification
//
// All error kinds are recoverable at the caller level: the core never panics
// on a business rule violation, it returns one of these types instead.
package errs
