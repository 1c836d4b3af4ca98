package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexiusacademia/gowst/internal/scenario"
	"github.com/alexiusacademia/gowst/internal/sweep"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

// Error codes of the JSON error body
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error            string                `json:"error"`
	ErrorDescription string                `json:"error_description,omitempty"`
	Fields           []wellbore.FieldError `json:"fields,omitempty"`
}

// badRequest marks request decoding failures
type badRequest struct {
	err error
}

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// WriteJSON writes v with the given status. v is encoded before the
// header is sent; an encoding failure becomes a 500 with an error body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: CodeInternal})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// WriteError maps err to a status code and writes the JSON error body.
// Internal errors carry no description.
func WriteError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	WriteJSON(w, status, body)
}

func classify(err error) (int, ErrorResponse) {
	var (
		verr *wellbore.ValidationError
		bad  badRequest
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: CodeBadRequest, ErrorDescription: err.Error(), Fields: verr.Fields}
	case errors.As(err, &bad),
		errors.Is(err, sweep.ErrInvalidSpec),
		errors.Is(err, scenario.ErrMissingName):
		return http.StatusBadRequest, ErrorResponse{Error: CodeBadRequest, ErrorDescription: err.Error()}
	case errors.Is(err, scenario.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: CodeNotFound, ErrorDescription: err.Error()}
	case errors.Is(err, scenario.ErrDuplicateName):
		return http.StatusConflict, ErrorResponse{Error: CodeConflict, ErrorDescription: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: CodeInternal}
}

// decode reads a JSON body into v, rejecting unknown fields
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest{err: errors.New("invalid JSON body: " + err.Error())}
	}
	return nil
}
