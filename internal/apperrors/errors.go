// Package apperrors defines the error taxonomy shared by repositories,
// services and handlers.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors
	ErrNotFound = errors.New("resource not found")

	// Conflict errors. ErrStateConflict is a conflict, so errors.Is(err, ErrConflict)
	// holds for both.
	ErrConflict      = errors.New("conflict")
	ErrStateConflict = fmt.Errorf("%w: order state transition rejected", ErrConflict)

	// Pricing errors
	ErrArithmetic = errors.New("arithmetic error")

	// Outbound call errors
	ErrTransport  = errors.New("transport error")
	ErrBadRequest = fmt.Errorf("%w: bad request", ErrTransport)

	// Auth and validation errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// DeliveryError is a failed outbound message with the provider's error code
// and description. It unwraps to Kind, ErrBadRequest or ErrTransport.
type DeliveryError struct {
	Code        int
	Description string
	Kind        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%v: %d %s", e.Kind, e.Code, e.Description)
}

func (e *DeliveryError) Unwrap() error {
	return e.Kind
}

// DeliveryDetails extracts the provider code and description from err. When
// err carries no DeliveryError the code is 0 and the description is err's text.
func DeliveryDetails(err error) (int, string) {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Code, de.Description
	}
	return 0, err.Error()
}
