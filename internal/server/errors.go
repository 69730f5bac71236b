package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for rejected requests.
var (
	ErrMalformedBody = errors.New("malformed request body")
	ErrMissingText   = errors.New("text is required")
	ErrEmptyText     = errors.New("text is empty")
	ErrTextTooLong   = errors.New("text exceeds maximum length")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// ValidationError describes why a request was rejected before any
// segmentation took place.
type ValidationError struct {
	Type string
	Loc  []string
	Msg  string
	err  error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func invalid(err error, typ, msg string, loc ...string) *ValidationError {
	if len(loc) == 0 {
		loc = []string{"body", "text"}
	}
	return &ValidationError{Type: typ, Loc: loc, Msg: msg, err: err}
}

func jsonInvalid() *ValidationError {
	return invalid(ErrMalformedBody, "json_invalid", "JSON decode error", "body")
}

func bodyTooLarge() *ValidationError {
	return invalid(ErrBodyTooLarge, "body_too_large", "Request body is too large", "body")
}

func tooShort(minLen int) *ValidationError {
	return invalid(ErrEmptyText, "string_too_short",
		fmt.Sprintf("String should have at least %d character", minLen))
}

func tooLong(maxLen int) *ValidationError {
	return invalid(ErrTextTooLong, "string_too_long",
		fmt.Sprintf("String should have at most %d characters", maxLen))
}

type errorDetail struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

type errorResponse struct {
	Detail []errorDetail `json:"detail"`
}

// statusFor maps a validation error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidationError(w http.ResponseWriter, verr *ValidationError) {
	writeJSON(w, statusFor(verr), errorResponse{
		Detail: []errorDetail{{Type: verr.Type, Loc: verr.Loc, Msg: verr.Msg}},
	})
}
