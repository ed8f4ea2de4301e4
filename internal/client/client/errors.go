package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
)

// APIError is a non-2xx response of the remote service.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Title      string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Unwrap maps the status code to a sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return ErrBadRequest
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode == http.StatusServiceUnavailable,
		e.StatusCode == http.StatusBadGateway,
		e.StatusCode == http.StatusGatewayTimeout:
		return ErrUnavailable
	case e.StatusCode >= 500:
		return ErrServer
	default:
		return nil
	}
}

// errorBody is the error envelope of the remote service:
// {"error": {"status": 401, "title": "Unauthorized", "message": "..."}}
type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

// IsCredentialRejection reports whether err means the remote refused the
// supplied token or username, as opposed to a transport or server fault.
func IsCredentialRejection(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound)
}
