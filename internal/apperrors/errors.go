package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates an operation attempted outside the allowed workflow state.
var ErrInvalidState = errors.New("invalid state")

// ErrImmutableState indicates a mutation of a record that is no longer editable.
var ErrImmutableState = errors.New("immutable state")

// ErrOverpayment indicates a payment larger than the outstanding balance.
var ErrOverpayment = errors.New("payment exceeds outstanding balance")

// ErrDuplicateActiveAssessment indicates another pending/approved assessment already covers the same subject and year.
var ErrDuplicateActiveAssessment = errors.New("duplicate active assessment")

// ErrNoApprovedAssessment indicates a selected service has nothing approved to bill.
var ErrNoApprovedAssessment = errors.New("no approved assessment")

// ErrSequenceViolation indicates a field visit recorded out of the fixed visit order.
var ErrSequenceViolation = errors.New("field visit sequence violation")

// ErrConflict indicates a concurrent writer changed the record first; the caller may re-read and retry.
var ErrConflict = errors.New("concurrent modification")

// ErrInternal is returned when a failure should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-equivalent code and message around an underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a not-found error with a descriptive message.
func NewNotFoundError(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a validation error with a descriptive message.
func NewValidationError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewInvalidStateError builds an invalid-state error with a descriptive message.
func NewInvalidStateError(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrInvalidState}
}

// NewForbiddenError builds a forbidden error with a descriptive message.
func NewForbiddenError(message string) error {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// kinds maps each sentinel to its stable machine-readable kind and status.
var kinds = []struct {
	err    error
	kind   string
	status int
}{
	{ErrValidation, "validation_error", http.StatusBadRequest},
	{ErrNotFound, "not_found", http.StatusNotFound},
	{ErrForbidden, "forbidden", http.StatusForbidden},
	{ErrInvalidState, "invalid_state", http.StatusConflict},
	{ErrImmutableState, "immutable_state", http.StatusConflict},
	{ErrOverpayment, "overpayment", http.StatusUnprocessableEntity},
	{ErrDuplicateActiveAssessment, "duplicate_active_assessment", http.StatusConflict},
	{ErrNoApprovedAssessment, "no_approved_assessment", http.StatusUnprocessableEntity},
	{ErrSequenceViolation, "sequence_violation", http.StatusUnprocessableEntity},
	{ErrConflict, "conflict", http.StatusConflict},
	{ErrDuplicate, "duplicate", http.StatusConflict},
}

// KindOf returns the machine-readable kind of err, "internal" when it matches no sentinel.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// StatusOf returns the HTTP status that corresponds to err.
func StatusOf(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}
