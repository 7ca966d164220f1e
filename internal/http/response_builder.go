package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"saledash/internal/core"
	"saledash/internal/log"
)

// writeJSON encodes v with the given status. Encoding errors after the header
// is sent can only be logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", log.FieldError, err.Error())
	}
}

// writeFailure logs err and answers 500 with the error text as the body.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.appMetrics.failures.Add(1)

	fields := log.NewFields().WithOperation(op).WithError(err)
	fields["error_type"] = errorType(err)
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", fields.ToSlice()...)

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func errorType(err error) string {
	var fe *core.FetchError
	var se *core.StoreError
	switch {
	case errors.As(err, &fe):
		return "fetch_error"
	case errors.As(err, &se):
		return "store_error"
	default:
		return "internal_error"
	}
}
