package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name    string `validate:"required"`
	Path    string `validate:"required,startswith=/"`
	BaseURI string `mapstructure:"base_uri" validate:"omitempty,url"`
	Mode    string `validate:"omitempty,oneof=a b"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sample{Name: "x", Path: "/p", BaseURI: "http://localhost:8080", Mode: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsFields(t *testing.T) {
	err := Validate(sample{Path: "p", BaseURI: "::", Mode: "c"})
	if err == nil {
		t.Fatal("expected error")
	}
	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}

	for _, field := range []string{"name", "path", "base_uri", "mode"} {
		if !verr.Has(field) {
			t.Errorf("expected failure on %q, got %v", field, verr.Fields)
		}
	}
	if !strings.Contains(err.Error(), `path: must start with "/"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if err := Validate(42); err == nil {
		t.Error("expected an error for a non-struct value")
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":              "name",
		"DeclaresSyncError": "declares_sync_error",
		"path":              "path",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
