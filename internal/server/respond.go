package server

import (
	"encoding/json"
	"errors"
	"net/http"

	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes data as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error body.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// respondErr maps err to a status and writes it. Unclassified errors are
// logged and reported as internal.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := kerrors.GetCode(err)
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status, code = 499, "CANCELED"
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	if code == "" {
		code = kerrors.ErrCodeInternal
	}
	respondError(w, status, string(code), kerrors.UserMessage(err))
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch kerrors.GetCode(err) {
	case kerrors.ErrCodeInvalidInput, kerrors.ErrCodeInvalidConfig, kerrors.ErrCodeInvalidFormat,
		kerrors.ErrCodeInvalidUsername, kerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case kerrors.ErrCodeNotFound, kerrors.ErrCodeUserNotFound:
		return http.StatusNotFound
	case kerrors.ErrCodeMissingVersions:
		return http.StatusConflict
	case kerrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case kerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case kerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case kerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
