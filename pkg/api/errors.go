package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the service
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server responded with status %d", e.Status)
}

// newAPIError pulls the detail message out of an error body when there is
// one. Bodies that are not JSON are ignored.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = strings.TrimSpace(payload.Detail)
	}

	return apiErr
}

// ErrorMessage extracts a human-readable message from a transport error.
// Empty means nothing useful could be extracted and the caller should fall
// back to its own generic wording.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return ""
}
