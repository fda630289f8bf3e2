package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Bind-time errors. Any of these aborts the whole bind.
const (
	// ErrCodeInvalidDescriptor indicates a declaration is structurally invalid.
	ErrCodeInvalidDescriptor ErrorCode = "INVALID_DESCRIPTOR"
	// ErrCodeInvalidTemplate indicates a malformed path template.
	ErrCodeInvalidTemplate ErrorCode = "INVALID_TEMPLATE"
	// ErrCodeUnmatchedPlaceholder indicates a {placeholder} with no Path parameter.
	ErrCodeUnmatchedPlaceholder ErrorCode = "UNMATCHED_PLACEHOLDER"
	// ErrCodeMissingSyncError indicates a sync method without a declared error capability.
	ErrCodeMissingSyncError ErrorCode = "MISSING_SYNC_ERROR"
	// ErrCodeHeadWithValue indicates a HEAD method that expects a response value.
	ErrCodeHeadWithValue ErrorCode = "HEAD_WITH_VALUE"
	// ErrCodeHeaderConflict indicates a dynamic header that also carries a static value.
	ErrCodeHeaderConflict ErrorCode = "HEADER_CONFLICT"
	// ErrCodeUnknownPublisher indicates a body-publisher id with no registered strategy.
	ErrCodeUnknownPublisher ErrorCode = "UNKNOWN_PUBLISHER"
	// ErrCodePublisherFailed indicates a body-publisher strategy refused the method.
	ErrCodePublisherFailed ErrorCode = "PUBLISHER_FAILED"
	// ErrCodeUnsupportedType indicates a parameter sort that cannot feed its role.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	// ErrCodeUnsupportedReturn indicates a declared return shape that cannot be produced.
	ErrCodeUnsupportedReturn ErrorCode = "UNSUPPORTED_RETURN"
	// ErrCodeDuplicateMethod indicates two declarations share a name.
	ErrCodeDuplicateMethod ErrorCode = "DUPLICATE_METHOD"
)

// Call-time errors.
const (
	// ErrCodeUnknownMethod indicates a call to a method that was never bound.
	ErrCodeUnknownMethod ErrorCode = "UNKNOWN_METHOD"
	// ErrCodeInvalidArgument indicates call arguments that do not fit the descriptor.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeSyncFailed indicates a transport failure surfaced from a sync call.
	ErrCodeSyncFailed ErrorCode = "SYNC_FAILED"
)

var bindCodes = map[ErrorCode]bool{
	ErrCodeInvalidDescriptor:    true,
	ErrCodeInvalidTemplate:      true,
	ErrCodeUnmatchedPlaceholder: true,
	ErrCodeMissingSyncError:     true,
	ErrCodeHeadWithValue:        true,
	ErrCodeHeaderConflict:       true,
	ErrCodeUnknownPublisher:     true,
	ErrCodePublisherFailed:      true,
	ErrCodeUnsupportedType:      true,
	ErrCodeUnsupportedReturn:    true,
	ErrCodeDuplicateMethod:      true,
}

// IsBindCode returns true if the code is raised while compiling descriptors.
func IsBindCode(code ErrorCode) bool {
	return bindCodes[code]
}
