package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/kbukum/restbind/resilience"
)

// ErrorCode classifies transport failures.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset).
	ErrCodeConnection
	// ErrCodeCancelled indicates the exchange was cancelled by the caller.
	ErrCodeCancelled
	// ErrCodeCircuitOpen indicates the circuit breaker refused the exchange.
	ErrCodeCircuitOpen
	// ErrCodeInvalidRequest indicates a request that could not be sent.
	ErrCodeInvalidRequest
	// ErrCodeAuth indicates a 401/403 status (only with status classification).
	ErrCodeAuth
	// ErrCodeNotFound indicates a 404 status (only with status classification).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates a 429 status (only with status classification).
	ErrCodeRateLimit
	// ErrCodeClient indicates any other 4xx status (only with status classification).
	ErrCodeClient
	// ErrCodeServer indicates a 5xx status (only with status classification).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCancelled:
		return "cancelled"
	case ErrCodeCircuitOpen:
		return "circuit_open"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified transport failure.
type Error struct {
	// StatusCode is the HTTP status code (0 for exchange-level failures).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Response is the completed response for status errors.
	Response *Response
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error { return newError(ErrCodeTimeout, err) }

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error { return newError(ErrCodeConnection, err) }

// NewCancelledError creates a cancellation error.
func NewCancelledError(err error) *Error { return newError(ErrCodeCancelled, err) }

// NewInvalidRequestError creates an error for a request that could not be sent.
func NewInvalidRequestError(err error) *Error { return newError(ErrCodeInvalidRequest, err) }

// Classify maps a failed exchange to a typed error. ctx is the exchange
// context, consulted to tell a caller cancellation from a deadline.
func Classify(ctx context.Context, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return newError(ErrCodeCircuitOpen, err)
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return NewCancelledError(err)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewTimeoutError(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// ClassifyStatus converts an error status into a typed error. It returns nil
// for anything below 400.
func ClassifyStatus(resp *Response) *Error {
	code := resp.StatusCode
	if code < 400 {
		return nil
	}
	e := &Error{StatusCode: code, Message: fmt.Sprintf("HTTP %d", code), Response: resp}
	switch {
	case code == 401 || code == 403:
		e.Code = ErrCodeAuth
	case code == 404:
		e.Code = ErrCodeNotFound
	case code == 429:
		e.Code = ErrCodeRateLimit
	case code < 500:
		e.Code = ErrCodeClient
	default:
		e.Code = ErrCodeServer
	}
	return e
}

// CodeOf returns the classification of err and whether err is a transport error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsCancelled checks if an error is a cancellation error.
func IsCancelled(err error) bool { return hasCode(err, ErrCodeCancelled) }

// IsCircuitOpen checks if an error was raised by an open circuit breaker.
func IsCircuitOpen(err error) bool { return hasCode(err, ErrCodeCircuitOpen) }

// IsServerError checks if an error is a classified 5xx status.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

func hasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
