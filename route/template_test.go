package route

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/restbind/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		template string
		want     []Fragment
	}{
		{"/users", []Fragment{{Text: "/users"}}},
		{"/users/{id}/name", []Fragment{{Text: "/users/"}, {Text: "id", Dynamic: true}, {Text: "/name"}}},
		{"/{a}{b}", []Fragment{{Text: "/"}, {Text: "a", Dynamic: true}, {Text: "b", Dynamic: true}}},
		{"/x/{id}", []Fragment{{Text: "/x/"}, {Text: "id", Dynamic: true}}},
		{"/send?name=Jeremy", []Fragment{{Text: "/send?name=Jeremy"}}},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.template, got, tt.want)
			}
		})
	}
}

func TestParse_Unclosed(t *testing.T) {
	_, err := Parse("/users/{id/name")
	if !errors.HasCode(err, errors.ErrCodeInvalidTemplate) {
		t.Fatalf("expected INVALID_TEMPLATE, got %v", err)
	}
	if !strings.Contains(err.Error(), "position 7") {
		t.Errorf("expected position of the brace, got %q", err.Error())
	}

	_, err = Parse("/a/{b}/{c")
	if err == nil || !strings.Contains(err.Error(), "position 7") {
		t.Errorf("expected position 7 for the second brace, got %v", err)
	}
}

func TestParse_EmptyPlaceholder(t *testing.T) {
	if _, err := Parse("/users/{}"); !errors.HasCode(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("expected INVALID_TEMPLATE, got %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	frags, _ := Parse("/{org}/repos/{repo}")
	if got := Placeholders(frags); !reflect.DeepEqual(got, []string{"org", "repo"}) {
		t.Errorf("unexpected placeholders %v", got)
	}
}
