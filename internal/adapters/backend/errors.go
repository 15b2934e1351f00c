package backend

import (
	"errors"
	"fmt"
)

// Sentinel kinds for backend errors.
var (
	// ErrNotFound marks a terminal entity-absent failure. Never retried.
	ErrNotFound = errors.New("not found")

	// ErrTransient marks an injected server error, indistinguishable from a
	// real transient network fault. Handled by the optimistic rollback path.
	ErrTransient = errors.New("simulated server error")
)

// Machine-readable validation reasons.
const (
	ReasonMissingTitle  = "missing_title"
	ReasonDuplicateSlug = "duplicate_slug"
	ReasonInvalidStage  = "invalid_stage"
	ReasonEmptyContent  = "empty_content"
	ReasonInvalidRange  = "invalid_range"
)

// ValidationError is a deterministic rejection of bad input. It is never
// subject to probabilistic fault injection, so callers can rely on it.
type ValidationError struct {
	Reason  string // machine-readable, e.g. "duplicate_slug"
	Message string // human-readable, surfaced inline near the input
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Message)
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
