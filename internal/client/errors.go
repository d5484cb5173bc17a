package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response. Message carries the server's "error" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bpr api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool  { return statusOf(err) == http.StatusNotFound }
func IsConflict(err error) bool  { return statusOf(err) == http.StatusConflict }
func IsForbidden(err error) bool { return statusOf(err) == http.StatusForbidden }
