package transport

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Body is a request payload. Length is -1 when unknown.
type Body struct {
	Reader io.Reader
	Length int64
	// Reopen, when set, returns a fresh reader over the same payload so the
	// body can be sent again after a redirect.
	Reopen func() io.Reader
}

// NoBody is the empty payload.
var NoBody = Body{}

// TextBody returns a payload reading s.
func TextBody(s string) Body {
	return Body{
		Reader: strings.NewReader(s),
		Length: int64(len(s)),
		Reopen: func() io.Reader { return strings.NewReader(s) },
	}
}

// Empty reports whether the body carries nothing.
func (b Body) Empty() bool {
	return b.Reader == nil
}

// Request is a built, immutable outbound request.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   Body
}

// RequestBuilder assembles one Request. It is not safe for concurrent use.
type RequestBuilder struct {
	uri    *url.URL
	header http.Header
	verb   string
	body   Body
	set    bool
}

// NewRequestBuilder opens a builder targeting uri. The URL is copied.
func NewRequestBuilder(uri *url.URL) *RequestBuilder {
	b := &RequestBuilder{header: make(http.Header)}
	b.URI(uri)
	return b
}

// URI replaces the target.
func (b *RequestBuilder) URI(uri *url.URL) {
	if uri == nil {
		b.uri = nil
		return
	}
	u := *uri
	b.uri = &u
}

// Header adds a header value. Repeated names accumulate.
func (b *RequestBuilder) Header(name, value string) {
	b.header.Add(name, value)
}

// Method sets the verb and the body.
func (b *RequestBuilder) Method(verb string, body Body) {
	b.verb = verb
	b.body = body
	b.set = true
}

// Build finalizes the request.
func (b *RequestBuilder) Build() (*Request, error) {
	if b.uri == nil {
		return nil, fmt.Errorf("transport: request has no URI")
	}
	if !b.uri.IsAbs() {
		return nil, fmt.Errorf("transport: request URI %q is not absolute", b.uri)
	}
	if !b.set || b.verb == "" {
		return nil, fmt.Errorf("transport: request has no method")
	}
	return &Request{
		Method: b.verb,
		URL:    b.uri,
		Header: b.header,
		Body:   b.body,
	}, nil
}
