package leadsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept in the error
const maxErrorBody = 2048

// StatusError is returned for every non-2xx response.
// Client methods return it unwrapped so callers can branch with errors.As.
type StatusError struct {
	Op         string // e.g. "list leads"
	StatusCode int
	Message    string // backend "error" field, or the leading part of the body
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Unauthorized reports whether the backend refused the credential
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Unauthorized()
}

// IsStatus reports whether err came from an HTTP response at all,
// as opposed to a transport failure where no response arrived
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// newStatusError builds the error from a response body.
// The backend answers failures with {"error": "..."}; anything else is kept verbatim, truncated.
func newStatusError(op string, statusCode int, body []byte) *StatusError {
	var payload struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	} else {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		msg = strings.TrimSpace(string(body))
	}
	return &StatusError{Op: op, StatusCode: statusCode, Message: msg}
}
