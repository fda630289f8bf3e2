// Package errors provides the structured error types shared by every restbind
// package: bind-time failures with machine-readable codes, and the domain error
// that wraps transport failures of synchronous calls.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type for bind and call failures.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// IsBind reports whether the error was raised at bind time.
func (e *AppError) IsBind() bool {
	return IsBindCode(e.Code)
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates a new AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// --- Bind-time constructors ---

// InvalidDescriptor creates an error for a structurally invalid declaration.
func InvalidDescriptor(method, reason string) *AppError {
	return New(ErrCodeInvalidDescriptor, reason).WithDetail("method", method)
}

// InvalidTemplate creates an error for a malformed path template.
func InvalidTemplate(template, reason string) *AppError {
	return Newf(ErrCodeInvalidTemplate, "invalid path template %q: %s", template, reason).
		WithDetail("template", template)
}

// UnmatchedPlaceholder creates an error for a placeholder with no Path parameter.
func UnmatchedPlaceholder(method, placeholder string) *AppError {
	return Newf(ErrCodeUnmatchedPlaceholder, "unknown path segment %q on %q", placeholder, method).
		WithDetail("method", method).
		WithDetail("placeholder", placeholder)
}

// MissingSyncError creates an error for a sync method without an error capability.
func MissingSyncError(method string) *AppError {
	return Newf(ErrCodeMissingSyncError, "sync method %q does not declare a sync error", method).
		WithDetail("method", method)
}

// HeadWithValue creates an error for a HEAD method that expects a body.
func HeadWithValue(method string) *AppError {
	return Newf(ErrCodeHeadWithValue, "a HEAD request never returns a body on %q", method).
		WithDetail("method", method)
}

// HeaderConflict creates an error for a dynamic header that carries a static value.
func HeaderConflict(method, header string) *AppError {
	return Newf(ErrCodeHeaderConflict, "dynamic header %q with static value on %q", header, method).
		WithDetail("method", method).
		WithDetail("param", header)
}

// UnknownPublisher creates an error for an unregistered body-publisher id.
func UnknownPublisher(method, id string) *AppError {
	return Newf(ErrCodeUnknownPublisher, "body publisher %q is not registered (method %q)", id, method).
		WithDetail("method", method).
		WithDetail("publisher", id)
}

// PublisherFailed creates an error for a body-publisher strategy that refused a method.
func PublisherFailed(method, id string, cause error) *AppError {
	return Newf(ErrCodePublisherFailed, "body publisher %q failed on %q", id, method).
		WithDetail("method", method).
		WithDetail("publisher", id).
		WithCause(cause)
}

// UnsupportedType creates an error for a parameter sort that cannot feed its role.
func UnsupportedType(method, param, sort string) *AppError {
	return Newf(ErrCodeUnsupportedType, "not yet supported: %s parameter %q on %q", sort, param, method).
		WithDetail("method", method).
		WithDetail("param", param).
		WithDetail("sort", sort)
}

// UnsupportedReturn creates an error for a return shape that cannot be produced.
func UnsupportedReturn(method, reason string) *AppError {
	return Newf(ErrCodeUnsupportedReturn, "%s on %q", reason, method).
		WithDetail("method", method)
}

// DuplicateMethod creates an error for two declarations sharing a name.
func DuplicateMethod(method string) *AppError {
	return Newf(ErrCodeDuplicateMethod, "method %q declared more than once", method).
		WithDetail("method", method)
}

// --- Call-time constructors ---

// UnknownMethod creates an error for a call to a method that was never bound.
func UnknownMethod(method string) *AppError {
	return Newf(ErrCodeUnknownMethod, "no method %q on this client", method).
		WithDetail("method", method)
}

// InvalidArgument creates an error for call arguments that do not fit the descriptor.
func InvalidArgument(method, reason string) *AppError {
	return Newf(ErrCodeInvalidArgument, "%s (method %q)", reason, method).
		WithDetail("method", method)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
