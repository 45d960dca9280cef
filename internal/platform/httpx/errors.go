// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/grocerpos/grocer/internal/shared"
)

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrInsufficientStock),
		errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to {"error": "..."} responses. Unclassified
// errors are reported as 500 with their raw message.
func RespondError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), shared.Message(err))
}
