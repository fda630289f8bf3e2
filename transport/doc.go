// Package transport is the HTTP collaborator bound methods dispatch through.
//
// A RequestBuilder assembles a Request (target URI, headers, verb and
// body). A Client sends it either blocking (Send) or non-blocking
// (SendAsync, which returns a Future). The BodyHandler passed with each
// send decides how the response body is materialized: decoded to a string
// or drained and discarded.
//
// HTTPClient is the net/http implementation. It carries default headers, a
// User-Agent, request ids, authentication (bearer, basic, API key, JWT or a
// custom hook), TLS, optional cleartext HTTP/2 and an optional circuit
// breaker and rate limiter.
//
//	c, err := transport.NewHTTPClient(transport.Config{Timeout: 10 * time.Second})
//	b := transport.NewRequestBuilder(u)
//	b.Header("Accept", "text/plain")
//	b.Method("GET", transport.NoBody)
//	req, _ := b.Build()
//	resp, err := c.Send(ctx, req, transport.StringBody)
package transport
