package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrEmptyCart  = fmt.Errorf("%w: cart is empty", ErrValidation)

	ErrOrderNotFound      = errors.New("order not found")
	ErrPrintOrderNotFound = errors.New("print order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrUserNotFound       = errors.New("user not found")

	ErrConflict        = errors.New("already exists")
	ErrVersionConflict = errors.New("record was modified by another request")
	ErrInvalidStatus   = fmt.Errorf("%w: unknown status", ErrValidation)

	ErrInvalidUser        = errors.New("user has no usable identifier")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many attempts, please try again later")

	ErrUserExists = &ConflictError{Field: "email"}
)

// ConflictError reports a unique-constraint violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Invalid wraps ErrValidation with a human readable detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
