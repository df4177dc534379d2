package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kliang/packmate/backend/internal/domain"
)

// ErrorResponse is the JSON error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respond writes v as JSON with the given status. A nil v writes only headers,
// which is how 204 responses are produced.
func respond(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP status of its sentinel and
// writes the error envelope. Errors outside the sentinel set are logged and
// surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respond(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		respond(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		respond(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{Code: "conflict", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrUnauthorized):
		respond(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthorized", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrUnavailable):
		respond(w, http.StatusServiceUnavailable, ErrorResponse{Error: ErrorDetail{Code: "unavailable", Message: unwrapMessage(err)}})
	default:
		slog.Error("internal error", "error", err)
		respond(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// writeRequestError rejects a request before it reaches the service layer
// (missing body, malformed JSON, bad path parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	respond(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields so
// client typos surface as errors rather than silently ignored input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.PlanService.Create: validation error: trip_name is required"
// → "trip_name is required". When the error carries no detail beyond the
// sentinel, the sentinel text itself is returned.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrConflict.Error(),
		domain.ErrUnauthorized.Error(),
		domain.ErrUnavailable.Error(),
	} {
		if idx := strings.Index(msg, sentinel+": "); idx >= 0 {
			return msg[idx+len(sentinel)+2:]
		}
	}
	// Strip "service.X.Op: " style prefixes when no detail followed the sentinel.
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
