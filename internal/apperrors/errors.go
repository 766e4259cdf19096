package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation is the root of the caller-fixable validation family. All
// posting validation errors wrap it, so callers can match either the
// specific failure or the family as a whole.
var ErrValidation = errors.New("validation error")

var (
	// ErrInsufficientEntries: a journal needs at least two entry lines.
	ErrInsufficientEntries = fmt.Errorf("%w: journal must have at least two entry lines", ErrValidation)
	// ErrInvalidLine: an entry line carries a negative, zero-both-sides,
	// two-sided, or over-precise amount.
	ErrInvalidLine = fmt.Errorf("%w: malformed entry line", ErrValidation)
	// ErrUnknownAccount: an entry references an account the directory does not know.
	ErrUnknownAccount = fmt.Errorf("%w: unknown account", ErrValidation)
	// ErrInactiveAccount: an entry references an INACTIVE account.
	ErrInactiveAccount = fmt.Errorf("%w: inactive account", ErrValidation)
	// ErrImbalancedEntry: total debits do not equal total credits exactly.
	ErrImbalancedEntry = fmt.Errorf("%w: journal debits and credits are not equal", ErrValidation)
)

// ErrConcurrencyConflict is transient: two postings raced on the same
// account's serialization point. The poster retries it with bounded
// backoff; every other layer propagates it unchanged.
var ErrConcurrencyConflict = errors.New("concurrent posting conflict")

// ErrConflict indicates the operation is not valid for the resource's
// current state (e.g. reversing an already-reversed journal).
var ErrConflict = errors.New("conflicting state")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError wraps an infrastructure failure with a stable message and code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
