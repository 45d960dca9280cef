package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the write collides with existing data.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientStock indicates a sale larger than the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrValidation indicates malformed or incomplete input.
	ErrValidation = errors.New("validation failed")
)

// Error pairs an error kind with the message reported to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound builds a not-found error with a client message.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Conflict builds a conflict error with a client message.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// InsufficientStock builds an insufficient-stock error with a client message.
func InsufficientStock(msg string) error {
	return &Error{Kind: ErrInsufficientStock, Message: msg}
}

// Validation builds a validation error with a client message.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// Message returns the client-facing message carried by err, or err.Error()
// when no *Error is present in the chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
