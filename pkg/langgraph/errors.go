package langgraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport         = errors.New("langgraph transport failed")
	ErrUnexpectedStatus  = errors.New("langgraph unexpected status")
	ErrMalformedResponse = errors.New("langgraph malformed response")
)

// StatusError is returned when the service answers with a status above 299.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("langgraph %s %s: http status=%d body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Temporary reports whether repeating the request may succeed.
func (e *StatusError) Temporary() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// IsRetryable classifies an error returned by Client.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return errors.Is(err, ErrTransport)
}
