package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Resolver outcomes. Both are routine results, not failures: the caller
// either treats the name literally or surfaces chain exhaustion.
var (
	// ErrNotAVirtualModel means the name does not resolve through a fallback
	// chain (unknown name, model disabled, or routing globally disabled).
	ErrNotAVirtualModel = errors.New("not a virtual model")

	// ErrNoRouteAvailable means every entry in the chain was checked and
	// none currently has capacity.
	ErrNoRouteAvailable = errors.New("no fallback route available")
)

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	type Alias Problem

	data := make(map[string]interface{})

	for k, v := range p.Extensions {
		data[k] = v
	}

	stdJSON, _ := json.Marshal(Alias(*p))
	_ = json.Unmarshal(stdJSON, &data)

	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewProblem creates a generic Problem
func NewProblem(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank", // Default as per RFC
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExtension adds a custom key-value pair to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// Error defines a standard error shape for the service layer.
type Error struct {
	// HTTP Status Code (e.g., 400, 404, 409)
	Code int
	// Safe message for the client
	Message string
	// Original error for internal logging
	Log error
}

// Error implements standard error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Log
}

// NotFoundError reports an unknown virtual model or entry id.
func NotFoundError(msg string) *Error {
	return &Error{Code: http.StatusNotFound, Message: msg}
}

// ConflictError reports a duplicate (case-insensitive) virtual model name.
func ConflictError(msg string) *Error {
	return &Error{Code: http.StatusConflict, Message: msg}
}

// InvalidIndexError reports an out-of-range move target.
func InvalidIndexError(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// ImportParseError reports a rejected import payload. The existing
// configuration is left untouched when this is returned.
func ImportParseError(msg string, err error) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: msg, Log: err}
}

// BadRequestError creates a standard error for a bad request
func BadRequestError(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusBadRequest, "Bad Request", detail, opts...)
}

// InternalError creates a standard error for any internal server error
func InternalError(msg string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: msg, Log: err}
}

// ValidationError creates a rich validation error
func ValidationError(validationErrors map[string]string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"One or more fields failed validation",
		WithExtension("errors", validationErrors),
	)
}

// WrapError allows wrapping a standard error in a service Error
func WrapError(err error, code int, msg string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s: %v", msg, err),
		Log:     err,
	}
}
