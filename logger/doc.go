// Package logger provides the structured logging used across restbind,
// built on zerolog.
//
// Bind-time diagnostics (skipped parameters, compile timing) and call-time
// failures are written through named component loggers. The binder logs
// under the "restbind" component unless a logger is supplied explicitly.
//
// # Configuration
//
//	logging:
//	  level: "warn"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("restbind")
//	log.Warn("parameter skipped", logger.Fields(logger.FieldMethod, "getThing"))
package logger
