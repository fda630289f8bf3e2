package route

import (
	"net/url"
	"testing"
)

func TestEscape_RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"a&b", "a%26b"},
		{"k=v", "k%3Dv"},
		{"1+1", "1%2B1"},
		{"héllo", "h%C3%A9llo"},
		{"日本", "%E6%97%A5%E6%9C%AC"},
		{"safe-_.~", "safe-_.~"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Escape(tt.in)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
			back, err := Unescape(got)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if back != tt.in {
				t.Errorf("round trip of %q gave %q", tt.in, back)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base   string
		target string
		want   string
	}{
		{"http://localhost:8080", "/users/42/name", "http://localhost:8080/users/42/name"},
		{"http://localhost:8080/", "/send?name=Jeremy&data=a%20b", "http://localhost:8080/send?name=Jeremy&data=a%20b"},
		{"https://api.example.com/v1/x?old=1", "/v2/y", "https://api.example.com/v2/y"},
		{"http://user@host:9/a/b", "/c?d=e", "http://user@host:9/c?d=e"},
		{"https://api.example.com/", "//other.example/x", "https://api.example.com//other.example/x"},
		{"https://api.example.com/", "//evil.example/steal?k=v", "https://api.example.com//evil.example/steal?k=v"},
		{"https://api.example.com", "/a#frag", "https://api.example.com/a"},
	}
	for _, tt := range tests {
		base, err := url.Parse(tt.base)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Resolve(base, tt.target)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Host != base.Host || got.Scheme != base.Scheme {
			t.Errorf("Resolve(%q, %q) left the base authority: %q", tt.base, tt.target, got)
		}
		if got.String() != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
		}
	}
}

func TestResolve_Invalid(t *testing.T) {
	base, _ := url.Parse("http://localhost")
	if _, err := Resolve(base, "/bad\x7f"); err == nil {
		t.Error("expected parse error for control character")
	}
	if _, err := Resolve(base, "evil.example/x"); err == nil {
		t.Error("expected a target without a leading slash to be rejected")
	}
}
