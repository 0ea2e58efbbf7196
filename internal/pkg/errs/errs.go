package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is. Each concrete error type
// below unwraps to exactly one of these.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrValidation             = errors.New("validation failed")
	ErrTenantMismatch         = errors.New("tenant mismatch")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrUpstreamFailure        = errors.New("upstream failure")
)

// sanitize collapses newlines so multi-line values cannot break log lines.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates a parameter failed a validity check.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric parameter fell outside its
// permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError
// wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(fmt.Sprintf("%v", e.Value)), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates a mandatory parameter was absent.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// FieldError is a single field-level violation inside a ValidationError.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field-level violation found in one
// validation pass, so a caller can correct all issues at once rather than
// resubmitting per failure.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates an empty ValidationError ready to collect
// field violations.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add appends a field violation. Returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field violation was collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Field reports whether a violation was recorded for the given field name.
func (e *ValidationError) Field(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, sanitize(f.Message)))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TenantMismatchError indicates the actor is not permitted to act for the
// claimed restaurant. The claimed id is retained for server-side logging but
// deliberately excluded from Error() so responses leak nothing about other
// tenants.
type TenantMismatchError struct {
	ClaimedTenantID string
}

// NewTenantMismatchError creates a TenantMismatchError for the claimed id.
func NewTenantMismatchError(claimedTenantID string) *TenantMismatchError {
	return &TenantMismatchError{ClaimedTenantID: claimedTenantID}
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("%s: actor is not permitted to act for the requested restaurant", ErrTenantMismatch)
}

func (e *TenantMismatchError) Unwrap() error {
	return ErrTenantMismatch
}

// UnauthorizedError indicates the actor's role lacks the scope for the
// attempted operation. Distinct from TenantMismatchError: the tenant was
// fine, the role was not.
type UnauthorizedError struct {
	Role      string
	Operation string
}

// NewUnauthorizedError creates an UnauthorizedError for a role and the
// operation it attempted.
func NewUnauthorizedError(role, operation string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrUnauthorized, e.Role, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidTransitionError indicates a status change that the order state
// machine does not permit.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// illegal from/to pair.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrentModificationError indicates an optimistic version check failed:
// the order changed between the caller's read and its write. The caller must
// reload the order and retry.
type ConcurrentModificationError struct {
	ParamName       string
	ID              any
	ExpectedVersion int
}

// NewConcurrentModificationError creates a ConcurrentModificationError for
// the entity and the version the caller expected.
func NewConcurrentModificationError(paramName string, id any, expectedVersion int) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, ExpectedVersion: expectedVersion}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %v changed since version %d was read",
		ErrConcurrentModification, e.ParamName, e.ID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// UpstreamFailureError indicates an external collaborator (payment, catalog,
// identity) was unavailable or returned an error after retries.
type UpstreamFailureError struct {
	Service string
	Cause   error
}

// NewUpstreamFailureError creates an UpstreamFailureError for the named
// collaborator wrapping the underlying cause.
func NewUpstreamFailureError(service string, cause error) *UpstreamFailureError {
	return &UpstreamFailureError{Service: service, Cause: cause}
}

func (e *UpstreamFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamFailure, e.Service, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamFailure, e.Service)
}

func (e *UpstreamFailureError) Unwrap() error {
	return ErrUpstreamFailure
}
