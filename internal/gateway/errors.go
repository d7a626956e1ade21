package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidPromo = errors.New("invalid promo code")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("slot no longer available")
	ErrNetwork      = errors.New("booking service unreachable")
)

// APIError is a non-2xx response. It unwraps to one of the sentinel errors
// above and keeps the server's message for display.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// kindFor maps a response status to the error taxonomy. What a 400 means
// depends on the endpoint, so the caller supplies it.
func kindFor(status int, badRequest error) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest:
		if badRequest == nil {
			return ErrValidation
		}
		return badRequest
	case http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return ErrNetwork
}

// Message extracts the text to show a user for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, ErrNetwork):
		return "Could not reach the booking service. Please try again."
	case errors.Is(err, ErrConflict):
		return "This slot no longer has enough availability."
	case errors.Is(err, ErrInvalidPromo):
		return "Invalid promo code"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	}
	return err.Error()
}
