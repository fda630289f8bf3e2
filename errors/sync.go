package errors

import (
	stderrors "errors"
	"fmt"
)

// SyncError is the domain error of a synchronous call. Transport failures
// (I/O, timeout, cancellation) are never returned unwrapped from a sync
// executor; they arrive as a SyncError whose Cause is the transport error.
type SyncError struct {
	// Method is the name of the bound method that failed.
	Method string
	// Cause is the transport failure.
	Cause error
}

// NewSyncError wraps a transport failure for the named method.
func NewSyncError(method string, cause error) *SyncError {
	return &SyncError{Method: method, Cause: cause}
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", ErrCodeSyncFailed, e.Method, e.Cause)
}

// Unwrap returns the transport failure.
func (e *SyncError) Unwrap() error { return e.Cause }

// IsSyncError checks if an error is, or wraps, a SyncError.
func IsSyncError(err error) bool {
	var se *SyncError
	return stderrors.As(err, &se)
}

// Is and As re-export the standard library helpers so callers importing this
// package under the name "errors" keep them at hand.
var (
	Is = stderrors.Is
	As = stderrors.As
)
