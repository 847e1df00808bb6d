// Package errors defines the error taxonomy shared by the workflow core and
// the store implementations.
//
// Four sentinels cover every failure the mutation layer can surface:
//
//	ErrValidation — malformed or missing field, or a value outside an enum
//	ErrNotFound   — the operation's target id does not exist
//	ErrReference  — a referenced Candidate or JobPosting id does not exist
//	ErrStore      — the persistence layer failed for an infrastructure reason
//
// Callers match with the Is* helpers; nothing escapes the uniform result
// surface unclassified.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeReference  = "reference_error"
	CodeStore      = "store_error"
)

var (
	ErrValidation = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound   = &Error{Code: CodeNotFound, Message: "resource not found"}
	ErrReference  = &Error{Code: CodeReference, Message: "referenced resource not found"}
	ErrStore      = &Error{Code: CodeStore, Message: "storage error"}
)

// Error carries a machine-readable code and a user-readable message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches by code so wrapped errors compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}
	return e.Code == t.Code
}

// Display returns the message callers may show to users. Store errors hide
// the infrastructure detail behind a generic message.
func (e *Error) Display() string {
	if e.Code == CodeStore {
		return "storage error"
	}
	return e.Message
}

// Validation builds a validation error with a user-readable message.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error naming the missing entity.
func NotFound(kind, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", kind, id)}
}

// Reference builds a referential error naming the dangling reference.
func Reference(kind, id string) *Error {
	return &Error{Code: CodeReference, Message: fmt.Sprintf("referenced %s %s does not exist", kind, id)}
}

// Store wraps an infrastructure failure from the persistence layer.
func Store(op string, err error) *Error {
	return &Error{Code: CodeStore, Message: fmt.Sprintf("%s failed", op), Err: errors.Wrap(err, op)}
}

// Is reports whether err matches target, unwrapping as needed.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target.
func As(err error, target any) bool { return errors.As(err, target) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsReference reports whether err is a referential error.
func IsReference(err error) bool { return errors.Is(err, ErrReference) }

// IsStore reports whether err is a storage error.
func IsStore(err error) bool { return errors.Is(err, ErrStore) }

// DisplayMessage extracts the user-facing message from any error in the
// taxonomy; unknown errors get the generic storage message.
func DisplayMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Display()
	}
	return "internal error"
}
