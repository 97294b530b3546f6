package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/stackcanvas/stackcanvas/pkg/errors"
)

// errorResponse is the JSON body for all API errors.
type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.opts.Logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.opts.Logger.Warn("request failed", "err", err)
	s.writeJSON(w, statusFor(err), errorResponse{
		Error: errs.UserMessage(err),
		Code:  errs.GetCode(err),
	})
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidGraph,
		errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound,
		errs.ErrCodeVersionNotFound, errs.ErrCodeDiagramNotFound:
		return http.StatusNotFound
	case errs.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errs.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errs.ErrCodeNetwork, errs.ErrCodeTimeout, errs.ErrCodeBadResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "request body must be valid JSON")
	}
	return nil
}
