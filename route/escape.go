package route

import (
	"fmt"
	"net/url"
	"strings"
)

// Escape percent-encodes s as UTF-8 for use as a query key or value.
// Space becomes %20 rather than "+".
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Unescape reverses Escape. A literal "+" decodes to a space, as in a form.
func Unescape(s string) (string, error) {
	return url.QueryUnescape(s)
}

// Resolve replaces the path and query of a copy of base with those of
// target. Scheme, user info and host always come from base, even when
// target begins with "//".
func Resolve(base *url.URL, target string) (*url.URL, error) {
	if !strings.HasPrefix(target, "/") {
		return nil, fmt.Errorf("route: target %q must start with /", target)
	}
	// Parsed under a fixed authority so a leading "//" stays part of the path.
	ref, err := url.Parse("http://target" + target)
	if err != nil {
		return nil, err
	}
	u := *base
	u.Opaque = ""
	u.Path = ref.Path
	u.RawPath = ref.RawPath
	u.RawQuery = ref.RawQuery
	u.ForceQuery = ref.ForceQuery
	u.Fragment = ""
	u.RawFragment = ""
	return &u, nil
}
