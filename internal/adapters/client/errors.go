package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/talentflow/talentflow/internal/adapters/backend"
)

// APIError is the typed failure surfaced to UI-facing code. Status mirrors
// the HTTP status a real service would have returned.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// AsAPIError unwraps err into an *APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// translate converts backend failures into APIErrors. Validation errors
// carry their structured message; everything else falls back to the
// generic per-endpoint message. Context cancellation passes through
// untouched so callers can tell abandonment from failure.
func translate(err error, generic string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if ve, ok := backend.AsValidation(err); ok {
		return &APIError{Status: http.StatusBadRequest, Message: ve.Message}
	}
	if errors.Is(err, backend.ErrNotFound) {
		return &APIError{Status: http.StatusNotFound, Message: generic}
	}
	// Injected transient faults and unexpected store failures both surface
	// as a server error; callers cannot tell them apart.
	return &APIError{Status: http.StatusInternalServerError, Message: generic}
}
