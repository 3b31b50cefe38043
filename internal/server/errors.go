package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/parser"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Command   string `json:"command,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, context.DeadlineExceeded), errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		// nginx's "client closed request"
		return 499
	}

	code := errors.GetCode(err)
	if errors.IsParseCode(code) {
		return http.StatusUnprocessableEntity
	}
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeConstruction:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// newErrorResponse describes err for the client.
func newErrorResponse(err error) errorResponse {
	resp := errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	}
	var pe *parser.ParseError
	if stderrors.As(err, &pe) {
		resp.Error = pe.Error()
		resp.Code = string(pe.Code)
		resp.Command = pe.Command
		resp.Line, resp.Column = pe.Line, pe.Column
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		resp.Error = "request body too large"
		resp.Code = string(errors.ErrCodeInvalidInput)
	}
	if resp.Code == "" {
		resp.Code = string(errors.ErrCodeInternal)
	}
	return resp
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := newErrorResponse(err)
	resp.RequestID = RequestID(r.Context())
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "id", resp.RequestID, "path", r.URL.Path, "err", err)
		// Internal details stay in the log.
		resp.Error = "internal error"
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("encode response", "err", err)
	}
}
