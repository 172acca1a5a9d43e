package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status    int
	Code      string
	Message   string // server-provided, may be empty
	RequestID string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

func newError(status int, requestID string, body []byte) *Error {
	e := &Error{Status: status, RequestID: requestID}
	var shape struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &shape) != nil {
		return e
	}
	e.Code, e.Message = shape.Code, shape.Message
	// "error" is an object inside the envelope, a plain string on
	// framework-generated error pages
	var inner struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if len(shape.Error) > 0 && json.Unmarshal(shape.Error, &inner) == nil {
		if e.Message == "" {
			e.Message = inner.Message
		}
		if e.Code == "" {
			e.Code = inner.Code
		}
	}
	return e
}

// ServerMessage returns the message the server attached to err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
