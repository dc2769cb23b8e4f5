// Package goerror carries structured application errors with a stable code
// and an HTTP status mapping.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates that the request conflicts with existing state.
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents server-side failures.
	TypeServer Type = iota
	// TypeBusiness represents business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates an invalid request format.
	CodeInvalidFormat
	// CodeInvalidInput indicates invalid request input.
	CodeInvalidInput
	// CodeNotFound indicates a missing resource.
	CodeNotFound
	// CodeConflict indicates a conflict (e.g., duplicate).
	CodeConflict
	// CodeUnauthorized indicates authentication failure.
	CodeUnauthorized
	// CodeTimeout indicates a timeout.
	CodeTimeout
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application. It can wrap an
// underlying error while also carrying a user-facing message, a high-level
// type, and a stable code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Business rule violation"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation of the error for logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns validation errors (field to message map), if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error wrapping the provided error.
func NewServer(err error) error {
	return newError(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return newError(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error. With a non-nil err it wraps it;
// otherwise kv pairs become the per-field message map.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return newError(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	verr := &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	verr.fields = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		verr.fields[kv[i]] = kv[i+1]
	}
	return verr
}

// NewInvalidFormat creates a validation error for an invalid request body format.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return newError(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}
