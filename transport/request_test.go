package transport

import (
	"io"
	"net/url"
	"strings"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestRequestBuilder_Build(t *testing.T) {
	u := mustURL(t, "http://localhost:8080/users/42")
	b := NewRequestBuilder(u)
	b.Header("X-A", "1")
	b.Header("x-a", "2")
	b.Method("POST", TextBody("hello"))

	req, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != "POST" || req.URL.String() != u.String() {
		t.Errorf("unexpected request %s %s", req.Method, req.URL)
	}
	if got := req.Header.Values("X-A"); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("expected accumulated header values, got %v", got)
	}
	data, _ := io.ReadAll(req.Body.Reader)
	if string(data) != "hello" || req.Body.Length != 5 {
		t.Errorf("unexpected body %q (%d)", data, req.Body.Length)
	}
}

func TestRequestBuilder_CopiesURI(t *testing.T) {
	u := mustURL(t, "http://localhost/a")
	b := NewRequestBuilder(u)
	b.Method("GET", NoBody)
	req, _ := b.Build()

	req.URL.RawQuery = "mutated=1"
	if u.RawQuery != "" {
		t.Error("builder must not alias the caller's URL")
	}
}

func TestRequestBuilder_Errors(t *testing.T) {
	noMethod := NewRequestBuilder(mustURL(t, "http://localhost/a"))
	if _, err := noMethod.Build(); err == nil || !strings.Contains(err.Error(), "no method") {
		t.Errorf("expected missing method error, got %v", err)
	}

	relative := NewRequestBuilder(mustURL(t, "/a"))
	relative.Method("GET", NoBody)
	if _, err := relative.Build(); err == nil {
		t.Error("expected relative URI to be rejected")
	}

	none := NewRequestBuilder(nil)
	none.Method("GET", NoBody)
	if _, err := none.Build(); err == nil {
		t.Error("expected missing URI to be rejected")
	}
}

func TestBodyHandlers(t *testing.T) {
	s, err := StringBody(strings.NewReader("héllo"))
	if err != nil || s != "héllo" {
		t.Errorf("StringBody = %q, %v", s, err)
	}

	s, err = StringBody(strings.NewReader("a\xffb"))
	if err != nil || s != "a\uFFFDb" {
		t.Errorf("expected replacement character, got %q, %v", s, err)
	}

	r := strings.NewReader("discard me")
	s, err = DiscardBody(r)
	if err != nil || s != "" {
		t.Errorf("DiscardBody = %q, %v", s, err)
	}
	if r.Len() != 0 {
		t.Error("expected body to be drained")
	}
}

func TestNoBody(t *testing.T) {
	if !NoBody.Empty() {
		t.Error("NoBody must be empty")
	}
	if TextBody("").Empty() {
		t.Error("an empty text body is still a body")
	}
}
