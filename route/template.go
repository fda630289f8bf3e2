package route

import (
	"fmt"
	"strings"

	"github.com/kbukum/restbind/errors"
)

// Fragment is one piece of a path template.
type Fragment struct {
	// Text is the literal text, or the placeholder name when Dynamic.
	Text    string
	Dynamic bool
}

// Parse splits a template into alternating static and dynamic fragments.
// Empty static fragments are omitted. An unterminated "{" is an error.
//
//	"/users/{id}/name" -> ["/users/", {id}, "/name"]
func Parse(template string) ([]Fragment, error) {
	var out []Fragment
	rest := template
	offset := 0

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			return nil, errors.InvalidTemplate(template,
				fmt.Sprintf("unclosed '{' at position %d", offset+open))
		}
		if open > 0 {
			out = append(out, Fragment{Text: rest[:open]})
		}
		name := rest[open+1 : open+1+end]
		if name == "" {
			return nil, errors.InvalidTemplate(template,
				fmt.Sprintf("empty placeholder at position %d", offset+open))
		}
		out = append(out, Fragment{Text: name, Dynamic: true})

		consumed := open + end + 2
		rest = rest[consumed:]
		offset += consumed
	}
	if rest != "" {
		out = append(out, Fragment{Text: rest})
	}
	return out, nil
}

// Placeholders returns the placeholder names of a template in order.
func Placeholders(frags []Fragment) []string {
	var names []string
	for _, f := range frags {
		if f.Dynamic {
			names = append(names, f.Text)
		}
	}
	return names
}
