// Package observability wires OpenTelemetry tracing and metrics for bound
// clients.
//
// Setup installs OTLP/HTTP tracer and meter providers as the otel globals:
//
//	shutdown, err := observability.Setup(ctx, observability.Config{
//	    Enabled:     true,
//	    ServiceName: "billing",
//	    Endpoint:    "localhost:4318",
//	    Insecure:    true,
//	})
//	defer shutdown(ctx)
//
// Executors record every call through Instruments: one span named
// "restbind.call <method>", a call counter, a failure counter and a duration
// histogram. Without Setup the otel globals are no-ops and recording costs
// next to nothing.
package observability
