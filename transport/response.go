package transport

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// BodyHandler materializes a response body.
type BodyHandler func(r io.Reader) (string, error)

// StringBody reads the whole body and decodes it as UTF-8. Invalid sequences
// become U+FFFD.
func StringBody(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return s, nil
}

// DiscardBody drains the body without buffering it.
func DiscardBody(r io.Reader) (string, error) {
	_, err := io.Copy(io.Discard, r)
	return "", err
}

// Response is a completed exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is the materialized body. It is empty when the body was discarded.
	Body    string
	Request *Request
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
