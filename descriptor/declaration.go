package descriptor

import (
	"reflect"
	"strings"
)

// Standard HTTP verbs. Any other non-empty token is a custom verb.
const (
	VerbGet     = "GET"
	VerbHead    = "HEAD"
	VerbPost    = "POST"
	VerbPut     = "PUT"
	VerbDelete  = "DELETE"
	VerbOptions = "OPTIONS"
	VerbTrace   = "TRACE"
)

// Built-in body-publisher ids.
const (
	PublisherNoBody     = "no-body"
	PublisherURLEncoded = "url-encoded"
	PublisherMultipart  = "multipart"
)

// Declaration is the resolved description of one method, as authored by the
// caller. It is validated and normalized by Extract.
type Declaration struct {
	// Name is the method identity. It must be unique within a set.
	Name string `validate:"required"`
	// Verb is a standard verb or a custom token.
	Verb string `validate:"required,excludesall= /?#"`
	// Path is the path template, e.g. "/users/{id}/name".
	Path string `validate:"required,startswith=/"`
	// Publisher is the body-publisher id. Empty selects the verb's default.
	Publisher string
	// Headers are static headers applied verbatim, in order.
	Headers []Header `validate:"dive"`
	// Params are the method parameters in call order.
	Params []Param `validate:"-"`
	// Returns is the declared return type.
	Returns TypeRef `validate:"-"`
	// DeclaresSyncError states that the method can raise the sync domain error.
	DeclaresSyncError bool
}

// Header is a static header.
type Header struct {
	Name  string `validate:"required"`
	Value string
}

// Tag attaches a role to a parameter. Value is only meaningful for static
// headers; on a parameter it is a conflict.
type Tag struct {
	Role  Role
	Name  string
	Value string
}

// Param is one declared parameter.
type Param struct {
	Tags []Tag
	// Type is the Go type of the argument. It drives the Sort unless Sort is set.
	Type reflect.Type
	// Sort overrides the classification of Type.
	Sort *Sort
}

// As returns a copy of p with its sort forced to s.
func (p Param) As(s Sort) Param {
	p.Sort = &s
	return p
}

// PathOf declares a path parameter of type T.
func PathOf[T any](name string) Param { return tagged[T](RolePath, name) }

// QueryOf declares a query parameter of type T.
func QueryOf[T any](name string) Param { return tagged[T](RoleQuery, name) }

// HeaderOf declares a dynamic header parameter of type T.
func HeaderOf[T any](name string) Param { return tagged[T](RoleHeader, name) }

// BodyOf declares a body parameter of type T.
func BodyOf[T any](name string) Param { return tagged[T](RoleBody, name) }

// Unused declares an untagged parameter of type T.
func Unused[T any]() Param { return Param{Type: reflect.TypeFor[T]()} }

func tagged[T any](role Role, name string) Param {
	return Param{
		Tags: []Tag{{Role: role, Name: name}},
		Type: reflect.TypeFor[T](),
	}
}

var standardVerbs = map[string]bool{
	VerbGet: true, VerbHead: true, VerbPost: true, VerbPut: true,
	VerbDelete: true, VerbOptions: true, VerbTrace: true,
}

// NormalizeVerb upper-cases standard verbs and leaves custom tokens as given.
func NormalizeVerb(verb string) string {
	if up := strings.ToUpper(verb); standardVerbs[up] {
		return up
	}
	return verb
}

// DefaultPublisher returns the body publisher a verb uses when none is
// declared, and whether the verb is fixed to it.
func DefaultPublisher(verb string) (id string, fixed bool) {
	switch verb {
	case VerbGet, VerbHead, VerbDelete, VerbTrace:
		return PublisherNoBody, true
	case VerbPost, VerbPut:
		return PublisherURLEncoded, false
	default:
		return PublisherNoBody, false
	}
}
