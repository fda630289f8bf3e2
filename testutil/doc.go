// Package testutil provides test infrastructure for restbind packages.
//
// EchoServer is a gin-backed HTTP server that records every exchange and
// answers with the request line, so tests can assert on exactly what a
// bound client put on the wire:
//
//	func TestCall(t *testing.T) {
//	    srv := testutil.NewEchoServer()
//	    testutil.T(t).Setup(srv)
//
//	    // ... call srv.URL() ...
//	    got := srv.Last()
//	    if got.RequestURI != "/users/42/name" { ... }
//	}
//
// Any path answers 200 with the body "<METHOD> <request-uri>". The path
// /status/<code> answers with that status instead, and /slow/<millis>
// delays the answer.
//
// EchoServer implements TestComponent, so the same lifecycle helpers work
// for any component a test needs to start, reset and stop.
package testutil
