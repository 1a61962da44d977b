package web

// errors.go turns handler errors into JSON responses.
//
// The technical error is logged with the request id; the client receives the
// coded message from core.MapError. Status codes follow the error kind when
// the handler does not pick one itself.

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/JonMunkholm/countycontacts/internal/logging"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var (
	errNoFile  = errors.New("no file provided")
	errNotCSV  = errors.New("upload a CSV file")
	errBadJSON = errors.New("invalid request body")
)

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	switch core.KindOf(err) {
	case core.KindMalformedInput:
		return http.StatusBadRequest
	case core.KindUnknownKey:
		return http.StatusNotFound
	case core.KindInvalidContact:
		return http.StatusUnprocessableEntity
	case core.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	}

	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrImportTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errNoFile), errors.Is(err, errNotCSV), errors.Is(err, errBadJSON):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes its user-facing form. A zero status
// derives one from the error.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if status == 0 {
		status = statusFor(err)
	}
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeBody(w, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
