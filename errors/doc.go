// Package errors provides the structured errors of restbind.
// AppError carries a machine-readable code and details naming the method,
// parameter or publisher at fault. Bind-time codes abort compilation of a
// whole declaration set; call-time codes are returned per call. SyncError
// wraps transport failures surfaced from synchronous calls.
package errors
