// Package executor compiles a normalized method into its call routine.
//
// Compile does all the per-method work once: the request target plan, the
// dynamic header converters, the body publisher and the response mapping.
// Bind attaches a compiled Executor to a base URI and a transport source,
// resolving fully static targets up front. What remains per call is
// argument conversion, request assembly and dispatch.
//
// Sync calls block in the transport and return the mapped value. Transport
// failures come back as *errors.SyncError. Async calls return a
// *transport.Future immediately and never fail on their own: argument
// problems and transport failures both surface through the Future, the
// latter unwrapped.
package executor
