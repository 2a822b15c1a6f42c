package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel categories. Every error type below unwraps to one of them.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrAccessDenied      = errors.New("access denied")
	ErrStateConflict     = errors.New("state conflict")
	ErrGeoPrecondition   = errors.New("geo precondition failed")
)

// ObjectNotFoundError reports a missing entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error naming the missing entity.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause is NewObjectNotFoundError with the underlying cause attached.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

// Unwrap returns ErrObjectNotFound.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error naming the invalid parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause is NewValueIsInvalidError with the underlying cause attached.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

// Unwrap returns ErrValueIsInvalid.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error naming the parameter and its bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause is NewValueIsOutOfRangeError with the underlying cause attached.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeValue(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns ErrValueIsOutOfRange.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error naming the missing parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause is NewValueIsRequiredError with the underlying cause attached.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

// Unwrap returns ErrValueIsRequired.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// AccessDeniedError reports a caller lacking the role or ownership for Action.
type AccessDeniedError struct {
	Action string
}

// NewAccessDeniedError creates an error describing the refused action.
func NewAccessDeniedError(action string) *AccessDeniedError {
	return &AccessDeniedError{Action: action}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAccessDenied, e.Action)
}

// Unwrap returns ErrAccessDenied.
func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// StateConflictError reports an operation that is not legal in the entity's current state.
type StateConflictError struct {
	Entity string
	Reason string
}

// NewStateConflictError creates an error for entity with a client-facing reason.
// Package-level sentinels of the domain are built with it.
func NewStateConflictError(entity, reason string) *StateConflictError {
	return &StateConflictError{Entity: entity, Reason: reason}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStateConflict, e.Entity, e.Reason)
}

// Unwrap returns ErrStateConflict.
func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// GeoPreconditionError reports a failed coordinate or distance check.
type GeoPreconditionError struct {
	Field  string
	Reason string
}

// NewGeoPreconditionError creates an error for the failed field.
func NewGeoPreconditionError(field, reason string) *GeoPreconditionError {
	return &GeoPreconditionError{Field: field, Reason: reason}
}

func (e *GeoPreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrGeoPrecondition, e.Reason)
}

// Unwrap returns ErrGeoPrecondition.
func (e *GeoPreconditionError) Unwrap() error {
	return ErrGeoPrecondition
}

// FieldErrors flattens a validation error into a field -> message map.
// Returns nil when err carries no field information.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	collectFields(err, fields)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// collectFields walks joined errors; a later message for a field replaces an earlier one.
func collectFields(err error, into map[string]string) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFields(inner, into)
		}
		return
	}

	var (
		required *ValueIsRequiredError
		invalid  *ValueIsInvalidError
		rng      *ValueIsOutOfRangeError
		geo      *GeoPreconditionError
	)
	switch {
	case errors.As(err, &required):
		into[required.ParamName] = required.Error()
	case errors.As(err, &invalid):
		into[invalid.ParamName] = invalid.Error()
	case errors.As(err, &rng):
		into[rng.ParamName] = rng.Error()
	case errors.As(err, &geo):
		into[geo.Field] = geo.Reason
	}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

func sanitizeValue(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
