package server

import (
	"encoding/json"
	"net/http"

	"github.com/mvollbrecht/pageflow/pkg/errors"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}
	s.writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound,
		errors.ErrCodeDocumentNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodePageNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidGeometry,
		errors.ErrCodeInvalidPage,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
