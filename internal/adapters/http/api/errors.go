package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/talentflow/talentflow/internal/adapters/client"
)

// writeAPIError maps a client failure onto the wire. APIErrors carry
// their own status; anything else is a 500. Cancelled requests get 499
// in the nginx tradition so dashboards can tell them from server faults.
func writeAPIError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, 499, "client_closed_request", "request cancelled")
		return
	}
	if ae, ok := client.AsAPIError(err); ok {
		writeError(w, ae.Status, codeFor(ae.Status), ae.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "")
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}
