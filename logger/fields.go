package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldMethod    = "method"
	FieldParam     = "param"
	FieldSort      = "sort"
	FieldRole      = "role"
	FieldVerb      = "verb"
	FieldURI       = "uri"
	FieldPublisher = "publisher"
	FieldStatus    = "status"
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
)

// Fields builds a map from alternating key-value pairs.
//
//	log.Warn("parameter skipped", logger.Fields(logger.FieldMethod, "getThing", logger.FieldParam, "tags"))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}

// Merge copies every entry of extra into fields, allocating when fields is nil.
func Merge(fields map[string]any, extra map[string]any) map[string]any {
	if fields == nil {
		fields = make(map[string]any, len(extra))
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
