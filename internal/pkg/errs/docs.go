// Package errs provides standardized error types for the marketplace service.
// Every operation failure surfaces as one of these types so the HTTP boundary
// can classify it without knowing which use case produced it.
//
// Categories:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input (422)
//   - AccessDeniedError: caller lacks the role or ownership the operation needs (403)
//   - StateConflictError: valid request in the wrong entity state (422)
//   - ObjectNotFoundError: referenced entity missing or not visible to the caller (404)
//   - GeoPreconditionError: coordinate or distance checks failed (422)
//
// Each type pairs a sentinel (ErrValueIsRequired, ErrStateConflict, ...) with a
// struct carrying details, constructors with and without cause, and an Unwrap
// that returns the sentinel so errors.Is works on the category.
package errs
